package jsonld

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/dsp-client/internal/vocab"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

var resourceMetadata = map[string]bool{
	vocab.Label:                true,
	vocab.AttachedToProject:    true,
	vocab.AttachedToUser:       true,
	vocab.HasPermissions:       true,
	vocab.UserHasPermission:    true,
	vocab.ArkURL:               true,
	vocab.VersionArkURL:        true,
	vocab.CreationDate:         true,
	vocab.LastModificationDate: true,
	vocab.IsDeleted:            true,
	vocab.DeleteDate:           true,
	vocab.DeleteComment:        true,
}

// ParseResource decodes a resource node and its values. ResourceClassLabel,
// property labels and list node labels are left for the caller to resolve.
func ParseResource(node Object) (*dsp.ReadResource, error) {
	res := &dsp.ReadResource{
		ID:                ID(node),
		Type:              TypeOf(node),
		Label:             String(node, vocab.Label),
		AttachedToProject: Ref(node, vocab.AttachedToProject),
		AttachedToUser:    Ref(node, vocab.AttachedToUser),
		HasPermissions:    String(node, vocab.HasPermissions),
		UserHasPermission: String(node, vocab.UserHasPermission),
		ArkURL:            String(node, vocab.ArkURL),
		VersionArkURL:     String(node, vocab.VersionArkURL),
		DeleteComment:     String(node, vocab.DeleteComment),
		Properties:        make(map[string][]dsp.ReadValue),
	}

	deleted, err := Bool(node, vocab.IsDeleted)
	if err != nil {
		return nil, err
	}

	res.IsDeleted = deleted || HasType(node, vocab.DeletedResource)

	if res.CreationDate, err = Time(node, vocab.CreationDate); err != nil {
		return nil, err
	}

	if res.LastModificationDate, err = Time(node, vocab.LastModificationDate); err != nil {
		return nil, err
	}

	if res.DeleteDate, err = Time(node, vocab.DeleteDate); err != nil {
		return nil, err
	}

	for key, raw := range node {
		if strings.HasPrefix(key, "@") || resourceMetadata[key] {
			continue
		}

		for _, frag := range Objects(raw) {
			typ := TypeOf(frag)
			if typ == "" || typ == vocab.DeletedValue {
				continue
			}

			value, err := DecodeValue(key, frag, ParseResource)
			if err != nil {
				return nil, err
			}

			res.Properties[key] = append(res.Properties[key], value)
		}
	}

	return res, nil
}

// ParseResourceSequence decodes every resource of a document in wire order.
func ParseResourceSequence(doc Object) (*dsp.ReadResourceSequence, error) {
	nodes := GraphNodes(doc)

	seq := &dsp.ReadResourceSequence{
		Resources: make([]*dsp.ReadResource, 0, len(nodes)),
	}

	more, err := Bool(doc, vocab.MayHaveMoreResults)
	if err != nil {
		return nil, err
	}

	seq.MayHaveMoreResults = more

	for i, node := range nodes {
		res, err := ParseResource(node)
		if err != nil {
			return nil, fmt.Errorf("resource %d (%s): %w", i, ID(node), err)
		}

		seq.Resources = append(seq.Resources, res)
	}

	seq.TotalCount = len(seq.Resources)

	return seq, nil
}
