package jsonld

import (
	"fmt"
	"reflect"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/dsp-client/internal/vocab"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// Validation rule errors. Messages are the ones the API itself reports.
var (
	errNoValues = validation.NewError("validation_no_values",
		"No values defined for {{.property}}")
	errNilValue = validation.NewError("validation_nil_value",
		"Nil value given for {{.property}}")
	errNothingToUpdate = validation.NewError("validation_nothing_to_update",
		"At least one of the following properties has to be updated: label, hasPermissions, newModificationDate")
	errIRIRequired = validation.NewError("validation_iri_required", dsp.ErrIRIRequired.Error())
)

// ValidateCreateResource checks that every property has at least one value
// and that no value is nil.
func ValidateCreateResource(r *dsp.CreateResource) error {
	err := validation.Validate(r.Properties, validation.By(func(interface{}) error {
		for _, property := range sortedKeys(r.Properties) {
			params := map[string]interface{}{"property": property}

			if len(r.Properties[property]) == 0 {
				return errNoValues.SetParams(params)
			}

			for _, value := range r.Properties[property] {
				if isNilValue(value) {
					return errNilValue.SetParams(params)
				}
			}
		}

		return nil
	}))
	if err != nil {
		return dsp.ValidationErrorOf(err)
	}

	return nil
}

func isNilValue(value dsp.CreateValue) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)

	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// EncodeCreateResource validates r and renders the create payload.
func EncodeCreateResource(r *dsp.CreateResource) (Object, error) {
	if err := ValidateCreateResource(r); err != nil {
		return nil, err
	}

	payload := Object{
		vocab.Type:              r.Type,
		vocab.Label:             r.Label,
		vocab.AttachedToProject: ref(r.AttachedToProject),
	}

	if r.AttachedToUser != "" {
		payload[vocab.AttachedToUser] = ref(r.AttachedToUser)
	}

	if r.CreationDate != "" {
		payload[vocab.CreationDate] = typed(vocab.XSDDateTime, r.CreationDate)
	}

	if r.HasPermissions != "" {
		payload[vocab.HasPermissions] = r.HasPermissions
	}

	for property, values := range r.Properties {
		frags := make([]Object, 0, len(values))

		for _, value := range values {
			frag, err := EncodeValue(value)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", property, err)
			}

			frags = append(frags, frag)
		}

		payload[property] = frags
	}

	return payload, nil
}

// ValidateUpdateResourceMetadata checks that at least one mutable field is set.
func ValidateUpdateResourceMetadata(u *dsp.UpdateResourceMetadata) error {
	err := validation.Validate(u.Label+u.HasPermissions+u.NewModificationDate,
		validation.Required.ErrorObject(errNothingToUpdate))
	if err != nil {
		return dsp.ValidationErrorOf(err)
	}

	return nil
}

// ValidateDeleteResource checks that the resource to delete or erase is named.
func ValidateDeleteResource(d *dsp.DeleteResource) error {
	err := validation.Validate(d.ID, validation.Required.ErrorObject(errIRIRequired))
	if err != nil {
		return &dsp.ValidationError{Message: err.Error(), Err: dsp.ErrIRIRequired}
	}

	return nil
}

// EncodeUpdateResourceMetadata validates u and renders the update payload.
func EncodeUpdateResourceMetadata(u *dsp.UpdateResourceMetadata) (Object, error) {
	if err := ValidateUpdateResourceMetadata(u); err != nil {
		return nil, err
	}

	payload := Object{
		vocab.ID:   u.ID,
		vocab.Type: u.Type,
	}

	if u.Label != "" {
		payload[vocab.Label] = u.Label
	}

	if u.HasPermissions != "" {
		payload[vocab.HasPermissions] = u.HasPermissions
	}

	if u.NewModificationDate != "" {
		payload[vocab.NewModificationDate] = typed(vocab.XSDDateTime, u.NewModificationDate)
	}

	if u.LastModificationDate != "" {
		payload[vocab.LastModificationDate] = typed(vocab.XSDDateTime, u.LastModificationDate)
	}

	return payload, nil
}

// EncodeDeleteResource renders the payload shared by delete and erase.
func EncodeDeleteResource(d *dsp.DeleteResource) Object {
	payload := Object{
		vocab.ID:   d.ID,
		vocab.Type: d.Type,
	}

	if d.DeleteComment != "" {
		payload[vocab.DeleteComment] = d.DeleteComment
	}

	if d.LastModificationDate != "" {
		payload[vocab.LastModificationDate] = typed(vocab.XSDDateTime, d.LastModificationDate)
	}

	return payload
}

// DecodeUpdateResourceMetadataResponse reads the server's reply to an update.
func DecodeUpdateResourceMetadataResponse(doc Object) (*dsp.UpdateResourceMetadataResponse, error) {
	resp := &dsp.UpdateResourceMetadataResponse{
		ResourceIRI:          Ref(doc, vocab.ResourceIRI),
		ResourceClassIRI:     Ref(doc, vocab.ResourceClassIRI),
		Label:                String(doc, vocab.Label),
		HasPermissions:       String(doc, vocab.HasPermissions),
		LastModificationDate: String(doc, vocab.LastModificationDate),
	}

	if resp.ResourceIRI == "" {
		return nil, fmt.Errorf("%w: %s", dsp.ErrMissingField, vocab.ResourceIRI)
	}

	return resp, nil
}

// DecodeDeleteResourceResponse reads the server's reply to a delete or erase.
func DecodeDeleteResourceResponse(doc Object) (*dsp.DeleteResourceResponse, error) {
	result, ok := Literal(doc, vocab.Result)
	if !ok {
		return nil, fmt.Errorf("%w: %s", dsp.ErrMissingField, vocab.Result)
	}

	return &dsp.DeleteResourceResponse{Result: result}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
