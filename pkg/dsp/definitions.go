package dsp

// Cardinality restricts how many values of a property a class admits.
type Cardinality struct {
	Property string `json:"property"`
	// Kind is one of "1", "0-1", "0-n" or "1-n".
	Kind     string `json:"kind"`
	GuiOrder *int   `json:"guiOrder,omitempty"`
}

// PropertyDefinition describes a property admitted by a class.
type PropertyDefinition struct {
	ID                  string `json:"id"`
	Label               string `json:"label,omitempty"`
	Comment             string `json:"comment,omitempty"`
	ObjectType          string `json:"objectType,omitempty"`
	SubjectType         string `json:"subjectType,omitempty"`
	IsLinkProperty      bool   `json:"isLinkProperty,omitempty"`
	IsLinkValueProperty bool   `json:"isLinkValueProperty,omitempty"`
	IsEditable          bool   `json:"isEditable,omitempty"`
}

// ResourceClassDefinition is the cached definition of one resource class.
type ResourceClassDefinition struct {
	ID            string                        `json:"id"`
	Label         string                        `json:"label,omitempty"`
	Comment       string                        `json:"comment,omitempty"`
	SubClassOf    []string                      `json:"subClassOf,omitempty"`
	Properties    map[string]PropertyDefinition `json:"properties,omitempty"`
	Cardinalities []Cardinality                 `json:"cardinalities,omitempty"`
}

// ListNode is the cached definition of one list node.
type ListNode struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Comment     string `json:"comment,omitempty"`
	Position    int    `json:"position"`
	RootNode    string `json:"rootNode,omitempty"`
	IsRootNode  bool   `json:"isRootNode,omitempty"`
	HasRootNode bool   `json:"hasRootNode,omitempty"`
}
