// Package validator provides single-rule validators and the structured
// ValidationError used across the serializer layer.
//
// A Validator checks one rule against a value that a field has already
// parsed. Rule validators never reject blank input (nil, "", 0, false, empty
// collections): presence is enforced by the field's required policy, so an
// optional field left empty is not rejected by a length or range rule.
//
// # Built-in rules
//
//   - MaxValue / MinValue – numeric bounds, generic over Numeric
//   - MaxLength / MinLength – size bounds, counting characters for strings
//     and elements for collections
//   - Tag – any go-playground/validator expression ("email", "url", ...)
//   - Func – adapter for ad-hoc checks
//
// # Errors
//
// ValidationError carries a Code and a structured Detail. The detail is a list
// of messages for a single value, an ordered field-to-detail mapping for an
// object, or a list of per-item details for a list. Serializers build the
// latter two by aggregating field errors, so clients receive every problem in
// one response and in declaration order.
//
//	err := validator.Run("toolong", validator.MaxLength(5))
//	if verr := validator.ExtractValidationError(err); verr != nil {
//	    fmt.Println(verr.Code, verr.Messages())
//	}
package validator
