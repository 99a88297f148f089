// Package handler turns typed functions into HTTP handlers guarded by check
// chains.
//
//	type SignupRequest struct {
//		Email string `json:"email"`
//		Age   int64  `json:"age"`
//	}
//
//	signup := handler.Wrap(
//		func(ctx handler.Context, req SignupRequest) handler.Response {
//			return handler.JSON(map[string]string{"email": req.Email}, handler.WithJSONStatus(http.StatusCreated))
//		},
//		handler.WithChains[SignupRequest](
//			check.Body("email").Trim().NormalizeEmail().IsEmail(),
//			check.Body("age").ToInt().IsInt(check.IntBounds{Min: &minAge}),
//		),
//	)
//
// Validation errors from every chain are collected before the handler is
// reached; the default error handler answers them with 422 and a JSON body:
//
//	{"error":{"code":"validation_error","message":"Validation failed",
//	  "details":{"email":["Invalid value"]},
//	  "errors":[{"location":"body","param":"email","value":"x","msg":"Invalid value"}]}}
//
// Faults raised by chains become 500 responses, unreadable bodies 400 and
// oversized bodies 413.
package handler
