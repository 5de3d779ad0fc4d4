// Package validator provides declarative input validation.
//
// Each rule pairs a check with the error reported when it fails, and Apply
// runs a list of rules and collects every failure:
//
//	err := validator.Apply(
//		validator.ValidEmail("email", req.Email),
//		validator.PasswordLength("password", req.Password, validator.DefaultPasswordPolicy),
//		validator.StrongPassword("password", req.Password, validator.DefaultPasswordPolicy),
//		validator.RequiredString("firstName", req.FirstName, "First name is required"),
//	)
//
// The returned ValidationErrors maps to a 400 response; its first message
// becomes the response message and Fields() the per-field details.
package validator
