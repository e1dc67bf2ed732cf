package dsp

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fivetwenty-io/dsp-client/internal/vocab"
)

// CreateValue is a value submitted with a create request. The set of
// implementations is closed; each maps to one knora-api value class.
type CreateValue interface {
	// ValueType returns the value class IRI.
	ValueType() string
	// Common returns the fields shared by every value type.
	Common() *CreateValueBase
	createValue()
}

// CreateValueBase holds the fields every create value may carry.
type CreateValueBase struct {
	ValueHasComment string
	HasPermissions  string
}

// Common returns the base itself.
func (b *CreateValueBase) Common() *CreateValueBase { return b }

// CreateBooleanValue is a boolean value.
type CreateBooleanValue struct {
	CreateValueBase
	Bool bool
}

// CreateColorValue is a color value such as "#ff3333".
type CreateColorValue struct {
	CreateValueBase
	Color string
}

// DateComponents is the calendar representation of a date value. Month and
// day are optional for both ends of the period.
type DateComponents struct {
	Calendar   string
	StartEra   string
	StartYear  int
	StartMonth *int
	StartDay   *int
	EndEra     string
	EndYear    int
	EndMonth   *int
	EndDay     *int
}

// CreateDateValue is a date value.
type CreateDateValue struct {
	CreateValueBase
	DateComponents
}

// CreateDecimalValue is an arbitrary precision decimal value.
type CreateDecimalValue struct {
	CreateValueBase
	Decimal decimal.Decimal
}

// CreateGeomValue is a region geometry given as its JSON string.
type CreateGeomValue struct {
	CreateValueBase
	GeometryString string
}

// CreateGeonameValue is a geonames.org identifier.
type CreateGeonameValue struct {
	CreateValueBase
	Geoname string
}

// CreateIntValue is an integer value.
type CreateIntValue struct {
	CreateValueBase
	Int int64
}

// CreateIntervalValue is a time interval in seconds.
type CreateIntervalValue struct {
	CreateValueBase
	Start decimal.Decimal
	End   decimal.Decimal
}

// CreateLinkValue links to another resource.
type CreateLinkValue struct {
	CreateValueBase
	LinkedResourceIRI string
}

// CreateListValue points to a list node.
type CreateListValue struct {
	CreateValueBase
	ListNode string
}

// CreateTextValueAsString is text without markup.
type CreateTextValueAsString struct {
	CreateValueBase
	Text string
}

// CreateTextValueAsXML is text with standoff markup and its mapping.
type CreateTextValueAsXML struct {
	CreateValueBase
	XML     string
	Mapping string
}

// CreateTimeValue is a timestamp given as an xsd:dateTimeStamp string.
type CreateTimeValue struct {
	CreateValueBase
	Time string
}

// CreateURIValue is a URI value.
type CreateURIValue struct {
	CreateValueBase
	URI string
}

func (*CreateBooleanValue) ValueType() string      { return vocab.BooleanValue }
func (*CreateColorValue) ValueType() string        { return vocab.ColorValue }
func (*CreateDateValue) ValueType() string         { return vocab.DateValue }
func (*CreateDecimalValue) ValueType() string      { return vocab.DecimalValue }
func (*CreateGeomValue) ValueType() string         { return vocab.GeomValue }
func (*CreateGeonameValue) ValueType() string      { return vocab.GeonameValue }
func (*CreateIntValue) ValueType() string          { return vocab.IntValue }
func (*CreateIntervalValue) ValueType() string     { return vocab.IntervalValue }
func (*CreateLinkValue) ValueType() string         { return vocab.LinkValue }
func (*CreateListValue) ValueType() string         { return vocab.ListValue }
func (*CreateTextValueAsString) ValueType() string { return vocab.TextValue }
func (*CreateTextValueAsXML) ValueType() string    { return vocab.TextValue }
func (*CreateTimeValue) ValueType() string         { return vocab.TimeValue }
func (*CreateURIValue) ValueType() string          { return vocab.URIValue }

func (*CreateBooleanValue) createValue()      {}
func (*CreateColorValue) createValue()        {}
func (*CreateDateValue) createValue()         {}
func (*CreateDecimalValue) createValue()      {}
func (*CreateGeomValue) createValue()         {}
func (*CreateGeonameValue) createValue()      {}
func (*CreateIntValue) createValue()          {}
func (*CreateIntervalValue) createValue()     {}
func (*CreateLinkValue) createValue()         {}
func (*CreateListValue) createValue()         {}
func (*CreateTextValueAsString) createValue() {}
func (*CreateTextValueAsXML) createValue()    {}
func (*CreateTimeValue) createValue()         {}
func (*CreateURIValue) createValue()          {}

// ReadValue is a value decoded from a server response. The set of
// implementations is closed.
type ReadValue interface {
	// ValueType returns the value class IRI.
	ValueType() string
	// Common returns the fields shared by every value type.
	Common() *ReadValueBase
	readValue()
}

// ReadValueBase holds the fields every read value carries.
type ReadValueBase struct {
	ID                string
	Type              string
	UUID              string
	AttachedToUser    string
	ArkURL            string
	VersionArkURL     string
	ValueCreationDate *time.Time
	HasPermissions    string
	UserHasPermission string
	ValueHasComment   string
	ValueAsString     string
	// Property is the IRI the value was found under.
	Property string
	// PropertyLabel is resolved from the class definitions.
	PropertyLabel string
}

// Common returns the base itself.
func (b *ReadValueBase) Common() *ReadValueBase { return b }

// ValueType returns the value class IRI.
func (b *ReadValueBase) ValueType() string { return b.Type }

// ReadBooleanValue is a boolean value.
type ReadBooleanValue struct {
	ReadValueBase
	Bool bool
}

// ReadColorValue is a color value.
type ReadColorValue struct {
	ReadValueBase
	Color string
}

// ReadDateValue is a date value.
type ReadDateValue struct {
	ReadValueBase
	DateComponents
}

// ReadDecimalValue is a decimal value.
type ReadDecimalValue struct {
	ReadValueBase
	Decimal decimal.Decimal
}

// Point2D is a point in relative image coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry is a decoded region geometry.
type Geometry struct {
	Status        string    `json:"status"`
	LineColor     string    `json:"lineColor"`
	LineWidth     float64   `json:"lineWidth"`
	Points        []Point2D `json:"points"`
	Type          string    `json:"type"`
	Radius        *Point2D  `json:"radius,omitempty"`
	OriginalIndex int       `json:"original_index,omitempty"`
}

// ReadGeomValue is a region geometry.
type ReadGeomValue struct {
	ReadValueBase
	Geometry       Geometry
	GeometryString string
}

// ReadGeonameValue is a geonames.org identifier.
type ReadGeonameValue struct {
	ReadValueBase
	Geoname string
}

// ReadIntValue is an integer value.
type ReadIntValue struct {
	ReadValueBase
	Int int64
}

// ReadIntervalValue is a time interval in seconds.
type ReadIntervalValue struct {
	ReadValueBase
	Start decimal.Decimal
	End   decimal.Decimal
}

// ReadLinkValue is a link to or from another resource.
type ReadLinkValue struct {
	ReadValueBase
	LinkedResourceIRI string
	// LinkedResource is the embedded target or source, if the server sent one.
	LinkedResource *ReadResource
	// Incoming is set when the linked resource is the source of the link.
	Incoming bool
}

// ReadListValue points to a list node.
type ReadListValue struct {
	ReadValueBase
	ListNode      string
	ListNodeLabel string
}

// ReadTextValueAsString is text without markup.
type ReadTextValueAsString struct {
	ReadValueBase
	Text string
}

// ReadTextValueAsXML is text with standoff markup.
type ReadTextValueAsXML struct {
	ReadValueBase
	XML     string
	Mapping string
}

// ReadTextValueAsHTML is text rendered to HTML by the server.
type ReadTextValueAsHTML struct {
	ReadValueBase
	HTML string
	XML  string
}

// ReadTimeValue is a timestamp.
type ReadTimeValue struct {
	ReadValueBase
	Time time.Time
}

// ReadURIValue is a URI value.
type ReadURIValue struct {
	ReadValueBase
	URI string
}

func (*ReadBooleanValue) readValue()      {}
func (*ReadColorValue) readValue()        {}
func (*ReadDateValue) readValue()         {}
func (*ReadDecimalValue) readValue()      {}
func (*ReadGeomValue) readValue()         {}
func (*ReadGeonameValue) readValue()      {}
func (*ReadIntValue) readValue()          {}
func (*ReadIntervalValue) readValue()     {}
func (*ReadLinkValue) readValue()         {}
func (*ReadListValue) readValue()         {}
func (*ReadTextValueAsString) readValue() {}
func (*ReadTextValueAsXML) readValue()    {}
func (*ReadTextValueAsHTML) readValue()   {}
func (*ReadTimeValue) readValue()         {}
func (*ReadURIValue) readValue()          {}

// ValuesOf returns the values of a property that have type T.
func ValuesOf[T ReadValue](r *ReadResource, propertyIRI string) []T {
	var out []T

	for _, v := range r.PropertyValues(propertyIRI) {
		if typed, ok := v.(T); ok {
			out = append(out, typed)
		}
	}

	return out
}
