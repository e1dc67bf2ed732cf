package dsp

import "time"

// ReadResource is a resource decoded from a server response. It is built
// only by the conversion pipeline and is not modified afterwards.
type ReadResource struct {
	ID   string `json:"id"   yaml:"id"`
	Type string `json:"type" yaml:"type"`

	Label string `json:"label" yaml:"label"`
	// ResourceClassLabel is resolved from the class definition; it is not on the wire.
	ResourceClassLabel string `json:"resourceClassLabel,omitempty" yaml:"resource_class_label,omitempty"`

	AttachedToProject string `json:"attachedToProject,omitempty" yaml:"attached_to_project,omitempty"`
	AttachedToUser    string `json:"attachedToUser,omitempty"    yaml:"attached_to_user,omitempty"`
	HasPermissions    string `json:"hasPermissions,omitempty"    yaml:"has_permissions,omitempty"`
	UserHasPermission string `json:"userHasPermission,omitempty" yaml:"user_has_permission,omitempty"`
	ArkURL            string `json:"arkUrl,omitempty"            yaml:"ark_url,omitempty"`
	VersionArkURL     string `json:"versionArkUrl,omitempty"     yaml:"version_ark_url,omitempty"`

	CreationDate         *time.Time `json:"creationDate,omitempty"         yaml:"creation_date,omitempty"`
	LastModificationDate *time.Time `json:"lastModificationDate,omitempty" yaml:"last_modification_date,omitempty"`

	IsDeleted     bool       `json:"isDeleted"               yaml:"is_deleted"`
	DeleteDate    *time.Time `json:"deleteDate,omitempty"    yaml:"delete_date,omitempty"`
	DeleteComment string     `json:"deleteComment,omitempty" yaml:"delete_comment,omitempty"`

	// Properties maps property IRIs to their values in wire order.
	Properties map[string][]ReadValue `json:"-" yaml:"-"`

	// PropertyLabels maps property IRIs to labels from the class definitions.
	PropertyLabels map[string]string `json:"propertyLabels,omitempty" yaml:"property_labels,omitempty"`
}

// PropertyValues returns the values of a property, or nil.
func (r *ReadResource) PropertyValues(propertyIRI string) []ReadValue {
	if r == nil || r.Properties == nil {
		return nil
	}

	return r.Properties[propertyIRI]
}

// ReadResourceSequence is an ordered list of resources from one response.
type ReadResourceSequence struct {
	Resources          []*ReadResource `json:"resources"          yaml:"resources"`
	MayHaveMoreResults bool            `json:"mayHaveMoreResults" yaml:"may_have_more_results"`
	TotalCount         int             `json:"totalCount"         yaml:"total_count"`
}

// CreateResource is a request to create a resource. Every property must map
// to at least one value.
type CreateResource struct {
	Type              string
	Label             string
	AttachedToProject string
	AttachedToUser    string
	// CreationDate is an optional xsd:dateTimeStamp string.
	CreationDate   string
	HasPermissions string
	Properties     map[string][]CreateValue
}

// AddValues appends values to a property.
func (r *CreateResource) AddValues(propertyIRI string, values ...CreateValue) {
	if r.Properties == nil {
		r.Properties = make(map[string][]CreateValue)
	}

	r.Properties[propertyIRI] = append(r.Properties[propertyIRI], values...)
}

// UpdateResourceMetadata changes a resource's label, permissions or
// modification date. At least one of those must be set.
type UpdateResourceMetadata struct {
	ID                   string
	Type                 string
	Label                string
	HasPermissions       string
	LastModificationDate string
	NewModificationDate  string
}

// UpdateResourceMetadataResponse is the server's reply to a metadata update.
type UpdateResourceMetadataResponse struct {
	ResourceIRI          string `json:"resourceIri"                    yaml:"resource_iri"`
	ResourceClassIRI     string `json:"resourceClassIri"               yaml:"resource_class_iri"`
	Label                string `json:"label,omitempty"                yaml:"label,omitempty"`
	HasPermissions       string `json:"hasPermissions,omitempty"       yaml:"has_permissions,omitempty"`
	LastModificationDate string `json:"lastModificationDate,omitempty" yaml:"last_modification_date,omitempty"`
}

// DeleteResource identifies a resource to delete or erase.
type DeleteResource struct {
	ID                   string
	Type                 string
	DeleteComment        string
	LastModificationDate string
}

// DeleteResourceResponse is the server's reply to a delete or erase.
type DeleteResourceResponse struct {
	Result string `json:"result" yaml:"result"`
}
