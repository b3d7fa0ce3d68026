// Package validator checks struct fields against rules declared in the
// validate tag, or against rules built in code.
//
// Rules are separated by semicolons and take comma separated parameters after
// a colon:
//
//	type ComicForm struct {
//		Title  string `validate:"required;max:200"`
//		Slug   string `validate:"slug"`
//		Format string `validate:"in:auto,pdf,images"`
//	}
//
//	if err := validator.ValidateStruct(&f); err != nil {
//		for _, e := range validator.ExtractValidationErrors(err) {
//			fmt.Println(e.Field, e.Message)
//		}
//	}
//
// Every rule except required passes on an empty string, so optional fields
// only need the format rule. Custom rules are added with RegisterValidator.
//
// Programmatic checks use the same Rule type:
//
//	err := validator.Apply(
//		validator.RequiredString("email", email),
//		validator.MinLenString("password", password, 8),
//	)
package validator
