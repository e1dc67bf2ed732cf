// Package vocab holds the IRIs of the knora-api v2 complex schema and the
// standard vocabularies the resource API uses on the wire.
package vocab

// Namespaces.
const (
	KnoraAPI = "http://api.knora.org/ontology/knora-api/v2#"
	RDFS     = "http://www.w3.org/2000/01/rdf-schema#"
	RDF      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSD      = "http://www.w3.org/2001/XMLSchema#"
	OWL      = "http://www.w3.org/2002/07/owl#"
	Schema   = "http://schema.org/"
)

// JSON-LD keywords.
const (
	ID    = "@id"
	Type  = "@type"
	Value = "@value"
	Graph = "@graph"
)

// Standard vocabulary terms.
const (
	Label          = RDFS + "label"
	Comment        = RDFS + "comment"
	SubClassOf     = RDFS + "subClassOf"
	SubPropertyOf  = RDFS + "subPropertyOf"
	XSDDecimal     = XSD + "decimal"
	XSDAnyURI      = XSD + "anyURI"
	XSDDateTime    = XSD + "dateTimeStamp"
	XSDInteger     = XSD + "integer"
	XSDBoolean     = XSD + "boolean"
	OWLClass       = OWL + "Class"
	OWLRestriction = OWL + "Restriction"
	OWLOnProperty  = OWL + "onProperty"
	OWLCardinality = OWL + "cardinality"
	OWLMinCard     = OWL + "minCardinality"
	OWLMaxCard     = OWL + "maxCardinality"
	OWLObjectProp  = OWL + "ObjectProperty"
	OWLDataProp    = OWL + "DatatypeProperty"
	NumberOfItems  = Schema + "numberOfItems"
)

// SalsahGUIOrder is the display order of a property in a class.
const SalsahGUIOrder = "http://api.knora.org/ontology/salsah-gui/v2#guiOrder"

// Resource metadata properties.
const (
	AttachedToProject    = KnoraAPI + "attachedToProject"
	AttachedToUser       = KnoraAPI + "attachedToUser"
	CreationDate         = KnoraAPI + "creationDate"
	LastModificationDate = KnoraAPI + "lastModificationDate"
	NewModificationDate  = KnoraAPI + "newModificationDate"
	HasPermissions       = KnoraAPI + "hasPermissions"
	UserHasPermission    = KnoraAPI + "userHasPermission"
	ArkURL               = KnoraAPI + "arkUrl"
	VersionArkURL        = KnoraAPI + "versionArkUrl"
	IsDeleted            = KnoraAPI + "isDeleted"
	DeleteDate           = KnoraAPI + "deleteDate"
	DeleteComment        = KnoraAPI + "deleteComment"
	MayHaveMoreResults   = KnoraAPI + "mayHaveMoreResults"
	DeletedResource      = KnoraAPI + "DeletedResource"
	DeletedValue         = KnoraAPI + "DeletedValue"
	Resource             = KnoraAPI + "Resource"
	Result               = KnoraAPI + "result"
	Error                = KnoraAPI + "error"
	ResourceIRI          = KnoraAPI + "resourceIri"
	ResourceClassIRI     = KnoraAPI + "resourceClassIri"
)

// Ontology entity properties.
const (
	ObjectType          = KnoraAPI + "objectType"
	SubjectType         = KnoraAPI + "subjectType"
	IsLinkProperty      = KnoraAPI + "isLinkProperty"
	IsLinkValueProperty = KnoraAPI + "isLinkValueProperty"
	IsEditable          = KnoraAPI + "isEditable"
	IsResourceClass     = KnoraAPI + "isResourceClass"
	IsResourceProperty  = KnoraAPI + "isResourceProperty"
)

// List node properties.
const (
	ListNode         = KnoraAPI + "ListNode"
	ListNodePosition = KnoraAPI + "listNodePosition"
	HasRootNode      = KnoraAPI + "hasRootNode"
	IsRootNode       = KnoraAPI + "isRootNode"
	HasSubListNode   = KnoraAPI + "hasSubListNode"
)

// Common value properties.
const (
	ValueHasComment   = KnoraAPI + "valueHasComment"
	ValueAsString     = KnoraAPI + "valueAsString"
	ValueHasUUID      = KnoraAPI + "valueHasUUID"
	ValueCreationDate = KnoraAPI + "valueCreationDate"
)

// Value classes.
const (
	BooleanValue  = KnoraAPI + "BooleanValue"
	ColorValue    = KnoraAPI + "ColorValue"
	DateValue     = KnoraAPI + "DateValue"
	DecimalValue  = KnoraAPI + "DecimalValue"
	GeomValue     = KnoraAPI + "GeomValue"
	GeonameValue  = KnoraAPI + "GeonameValue"
	IntValue      = KnoraAPI + "IntValue"
	IntervalValue = KnoraAPI + "IntervalValue"
	LinkValue     = KnoraAPI + "LinkValue"
	ListValue     = KnoraAPI + "ListValue"
	TextValue     = KnoraAPI + "TextValue"
	TimeValue     = KnoraAPI + "TimeValue"
	URIValue      = KnoraAPI + "UriValue"
)

// Type-specific value properties.
const (
	BooleanValueAsBoolean     = KnoraAPI + "booleanValueAsBoolean"
	ColorValueAsColor         = KnoraAPI + "colorValueAsColor"
	DateValueHasCalendar      = KnoraAPI + "dateValueHasCalendar"
	DateValueHasStartEra      = KnoraAPI + "dateValueHasStartEra"
	DateValueHasStartYear     = KnoraAPI + "dateValueHasStartYear"
	DateValueHasStartMonth    = KnoraAPI + "dateValueHasStartMonth"
	DateValueHasStartDay      = KnoraAPI + "dateValueHasStartDay"
	DateValueHasEndEra        = KnoraAPI + "dateValueHasEndEra"
	DateValueHasEndYear       = KnoraAPI + "dateValueHasEndYear"
	DateValueHasEndMonth      = KnoraAPI + "dateValueHasEndMonth"
	DateValueHasEndDay        = KnoraAPI + "dateValueHasEndDay"
	DecimalValueAsDecimal     = KnoraAPI + "decimalValueAsDecimal"
	GeometryValueAsGeometry   = KnoraAPI + "geometryValueAsGeometry"
	GeonameValueAsGeonameCode = KnoraAPI + "geonameValueAsGeonameCode"
	IntValueAsInt             = KnoraAPI + "intValueAsInt"
	IntervalValueHasStart     = KnoraAPI + "intervalValueHasStart"
	IntervalValueHasEnd       = KnoraAPI + "intervalValueHasEnd"
	LinkValueHasTarget        = KnoraAPI + "linkValueHasTarget"
	LinkValueHasTargetIRI     = KnoraAPI + "linkValueHasTargetIri"
	LinkValueHasSource        = KnoraAPI + "linkValueHasSource"
	LinkValueHasSourceIRI     = KnoraAPI + "linkValueHasSourceIri"
	ListValueAsListNode       = KnoraAPI + "listValueAsListNode"
	TextValueAsXML            = KnoraAPI + "textValueAsXml"
	TextValueAsHTML           = KnoraAPI + "textValueAsHtml"
	TextValueHasMapping       = KnoraAPI + "textValueHasMapping"
	TimeValueAsTimeStamp      = KnoraAPI + "timeValueAsTimeStamp"
	URIValueAsURI             = KnoraAPI + "uriValueAsUri"
)

// IsKnoraAPI reports whether iri lives in the knora-api namespace.
func IsKnoraAPI(iri string) bool {
	return len(iri) >= len(KnoraAPI) && iri[:len(KnoraAPI)] == KnoraAPI
}
