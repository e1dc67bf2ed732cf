package jsonld

import (
	"fmt"

	"github.com/fivetwenty-io/dsp-client/internal/vocab"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// preferredLanguage is picked from language-tagged labels when present.
const preferredLanguage = "en"

// LangString returns a label given as a plain string, a language-tagged
// literal or a list of those.
func LangString(obj Object, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}

	var first string

	for _, literal := range Objects(obj[key]) {
		value, _ := literalOf(literal)
		if lang, _ := literal["@language"].(string); lang == preferredLanguage {
			return value
		}

		if first == "" {
			first = value
		}
	}

	return first
}

// DecodeResourceClass extracts the definition of classIRI from an ontology
// response together with the properties it defines.
func DecodeResourceClass(doc Object, classIRI string) (*dsp.ResourceClassDefinition, error) {
	var class Object

	properties := make(map[string]dsp.PropertyDefinition)

	for _, node := range GraphNodes(doc) {
		id := ID(node)
		if id == classIRI {
			class = node

			continue
		}

		if HasType(node, vocab.OWLObjectProp) || HasType(node, vocab.OWLDataProp) || node[vocab.ObjectType] != nil {
			prop, err := decodeProperty(node)
			if err != nil {
				return nil, err
			}

			properties[id] = prop
		}
	}

	if class == nil {
		return nil, fmt.Errorf("%w: %s", dsp.ErrClassNotFound, classIRI)
	}

	def := &dsp.ResourceClassDefinition{
		ID:         classIRI,
		Label:      LangString(class, vocab.Label),
		Comment:    LangString(class, vocab.Comment),
		Properties: properties,
	}

	for _, super := range Objects(class[vocab.SubClassOf]) {
		if HasType(super, vocab.OWLRestriction) {
			card, err := decodeCardinality(super)
			if err != nil {
				return nil, err
			}

			def.Cardinalities = append(def.Cardinalities, card)

			continue
		}

		if id := ID(super); id != "" {
			def.SubClassOf = append(def.SubClassOf, id)
		}
	}

	return def, nil
}

func decodeProperty(node Object) (dsp.PropertyDefinition, error) {
	prop := dsp.PropertyDefinition{
		ID:          ID(node),
		Label:       LangString(node, vocab.Label),
		Comment:     LangString(node, vocab.Comment),
		ObjectType:  Ref(node, vocab.ObjectType),
		SubjectType: Ref(node, vocab.SubjectType),
	}

	flags := map[string]*bool{
		vocab.IsLinkProperty:      &prop.IsLinkProperty,
		vocab.IsLinkValueProperty: &prop.IsLinkValueProperty,
		vocab.IsEditable:          &prop.IsEditable,
	}

	for key, target := range flags {
		b, err := Bool(node, key)
		if err != nil {
			return prop, fmt.Errorf("property %s: %w", prop.ID, err)
		}

		*target = b
	}

	return prop, nil
}

func decodeCardinality(restriction Object) (dsp.Cardinality, error) {
	card := dsp.Cardinality{Property: Ref(restriction, vocab.OWLOnProperty)}

	if n, ok, err := Int(restriction, vocab.OWLCardinality); err != nil {
		return card, err
	} else if ok && n == 1 {
		card.Kind = "1"
	}

	if n, ok, err := Int(restriction, vocab.OWLMaxCard); err != nil {
		return card, err
	} else if ok && n == 1 {
		card.Kind = "0-1"
	}

	if n, ok, err := Int(restriction, vocab.OWLMinCard); err != nil {
		return card, err
	} else if ok {
		card.Kind = "0-n"
		if n >= 1 {
			card.Kind = "1-n"
		}
	}

	if order, ok, err := Int(restriction, vocab.SalsahGUIOrder); err != nil {
		return card, err
	} else if ok {
		o := int(order)
		card.GuiOrder = &o
	}

	return card, nil
}

// DecodeListNode reads a list node response. A response holding the whole
// list is searched for nodeIRI.
func DecodeListNode(doc Object, nodeIRI string) (*dsp.ListNode, error) {
	node := findNode(doc, nodeIRI)
	if node == nil {
		return nil, fmt.Errorf("%w: list node %s", dsp.ErrMissingField, nodeIRI)
	}

	position, _, err := Int(node, vocab.ListNodePosition)
	if err != nil {
		return nil, err
	}

	isRoot, err := Bool(node, vocab.IsRootNode)
	if err != nil {
		return nil, err
	}

	rootNode := Ref(node, vocab.HasRootNode)

	return &dsp.ListNode{
		ID:          nodeIRI,
		Label:       LangString(node, vocab.Label),
		Comment:     LangString(node, vocab.Comment),
		Position:    int(position),
		RootNode:    rootNode,
		IsRootNode:  isRoot,
		HasRootNode: rootNode != "",
	}, nil
}

func findNode(node Object, id string) Object {
	if ID(node) == id {
		return node
	}

	children := Objects(node[vocab.Graph])
	children = append(children, Objects(node[vocab.HasSubListNode])...)

	for _, child := range children {
		if found := findNode(child, id); found != nil {
			return found
		}
	}

	return nil
}
