package jsonld

import (
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/dsp-client/internal/vocab"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// EncodeValue renders a create value as its JSON-LD fragment.
func EncodeValue(value dsp.CreateValue) (Object, error) {
	frag := Object{vocab.Type: value.ValueType()}

	switch v := value.(type) {
	case *dsp.CreateBooleanValue:
		frag[vocab.BooleanValueAsBoolean] = v.Bool
	case *dsp.CreateColorValue:
		frag[vocab.ColorValueAsColor] = v.Color
	case *dsp.CreateDateValue:
		encodeDate(frag, &v.DateComponents)
	case *dsp.CreateDecimalValue:
		frag[vocab.DecimalValueAsDecimal] = typed(vocab.XSDDecimal, v.Decimal.String())
	case *dsp.CreateGeomValue:
		frag[vocab.GeometryValueAsGeometry] = v.GeometryString
	case *dsp.CreateGeonameValue:
		frag[vocab.GeonameValueAsGeonameCode] = v.Geoname
	case *dsp.CreateIntValue:
		frag[vocab.IntValueAsInt] = v.Int
	case *dsp.CreateIntervalValue:
		frag[vocab.IntervalValueHasStart] = typed(vocab.XSDDecimal, v.Start.String())
		frag[vocab.IntervalValueHasEnd] = typed(vocab.XSDDecimal, v.End.String())
	case *dsp.CreateLinkValue:
		frag[vocab.LinkValueHasTargetIRI] = ref(v.LinkedResourceIRI)
	case *dsp.CreateListValue:
		frag[vocab.ListValueAsListNode] = ref(v.ListNode)
	case *dsp.CreateTextValueAsString:
		frag[vocab.ValueAsString] = v.Text
	case *dsp.CreateTextValueAsXML:
		frag[vocab.TextValueAsXML] = v.XML
		frag[vocab.TextValueHasMapping] = ref(v.Mapping)
	case *dsp.CreateTimeValue:
		frag[vocab.TimeValueAsTimeStamp] = typed(vocab.XSDDateTime, v.Time)
	case *dsp.CreateURIValue:
		frag[vocab.URIValueAsURI] = typed(vocab.XSDAnyURI, v.URI)
	default:
		return nil, fmt.Errorf("%w: %T", dsp.ErrUnsupportedValue, value)
	}

	common := value.Common()
	if common.ValueHasComment != "" {
		frag[vocab.ValueHasComment] = common.ValueHasComment
	}

	if common.HasPermissions != "" {
		frag[vocab.HasPermissions] = common.HasPermissions
	}

	return frag, nil
}

func encodeDate(frag Object, d *dsp.DateComponents) {
	frag[vocab.DateValueHasCalendar] = d.Calendar
	frag[vocab.DateValueHasStartEra] = d.StartEra
	frag[vocab.DateValueHasStartYear] = d.StartYear
	frag[vocab.DateValueHasEndEra] = d.EndEra
	frag[vocab.DateValueHasEndYear] = d.EndYear

	optional := map[string]*int{
		vocab.DateValueHasStartMonth: d.StartMonth,
		vocab.DateValueHasStartDay:   d.StartDay,
		vocab.DateValueHasEndMonth:   d.EndMonth,
		vocab.DateValueHasEndDay:     d.EndDay,
	}

	for key, value := range optional {
		if value != nil {
			frag[key] = *value
		}
	}
}

// decodeFunc fills the type-specific part of a read value.
type decodeFunc func(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error)

// LinkedResourceDecoder decodes a resource embedded in a link value.
type LinkedResourceDecoder func(node Object) (*dsp.ReadResource, error)

var valueDecoders = map[string]decodeFunc{
	vocab.BooleanValue:  decodeBoolean,
	vocab.ColorValue:    decodeColor,
	vocab.DateValue:     decodeDate,
	vocab.DecimalValue:  decodeDecimal,
	vocab.GeomValue:     decodeGeom,
	vocab.GeonameValue:  decodeGeoname,
	vocab.IntValue:      decodeInt,
	vocab.IntervalValue: decodeInterval,
	vocab.ListValue:     decodeList,
	vocab.TextValue:     decodeText,
	vocab.TimeValue:     decodeTime,
	vocab.URIValue:      decodeURI,
}

// IsValueType reports whether iri names a value class with a decoder.
func IsValueType(iri string) bool {
	_, ok := valueDecoders[iri]

	return ok || iri == vocab.LinkValue
}

// DecodeValue decodes one value fragment found under property. Embedded
// link targets are decoded with linked; it may be nil when none are expected.
func DecodeValue(property string, frag Object, linked LinkedResourceDecoder) (dsp.ReadValue, error) {
	base, err := decodeValueBase(property, frag)
	if err != nil {
		return nil, err
	}

	if base.Type == vocab.LinkValue {
		return decodeLink(frag, base, linked)
	}

	decode, ok := valueDecoders[base.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q under %s", dsp.ErrUnknownValueType, base.Type, property)
	}

	value, err := decode(frag, base)
	if err != nil {
		return nil, fmt.Errorf("decoding %s under %s: %w", base.Type, property, err)
	}

	return value, nil
}

func decodeValueBase(property string, frag Object) (dsp.ReadValueBase, error) {
	created, err := Time(frag, vocab.ValueCreationDate)
	if err != nil {
		return dsp.ReadValueBase{}, err
	}

	return dsp.ReadValueBase{
		ID:                ID(frag),
		Type:              TypeOf(frag),
		UUID:              String(frag, vocab.ValueHasUUID),
		AttachedToUser:    Ref(frag, vocab.AttachedToUser),
		ArkURL:            String(frag, vocab.ArkURL),
		VersionArkURL:     String(frag, vocab.VersionArkURL),
		ValueCreationDate: created,
		HasPermissions:    String(frag, vocab.HasPermissions),
		UserHasPermission: String(frag, vocab.UserHasPermission),
		ValueHasComment:   String(frag, vocab.ValueHasComment),
		ValueAsString:     String(frag, vocab.ValueAsString),
		Property:          property,
	}, nil
}

func decodeBoolean(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	b, err := Bool(frag, vocab.BooleanValueAsBoolean)
	if err != nil {
		return nil, err
	}

	return &dsp.ReadBooleanValue{ReadValueBase: base, Bool: b}, nil
}

func decodeColor(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	return &dsp.ReadColorValue{ReadValueBase: base, Color: String(frag, vocab.ColorValueAsColor)}, nil
}

func decodeDate(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	value := &dsp.ReadDateValue{ReadValueBase: base}
	d := &value.DateComponents

	d.Calendar = String(frag, vocab.DateValueHasCalendar)
	d.StartEra = String(frag, vocab.DateValueHasStartEra)
	d.EndEra = String(frag, vocab.DateValueHasEndEra)

	years := map[string]*int{
		vocab.DateValueHasStartYear: &d.StartYear,
		vocab.DateValueHasEndYear:   &d.EndYear,
	}

	for key, target := range years {
		n, _, err := Int(frag, key)
		if err != nil {
			return nil, err
		}

		*target = int(n)
	}

	optional := map[string]**int{
		vocab.DateValueHasStartMonth: &d.StartMonth,
		vocab.DateValueHasStartDay:   &d.StartDay,
		vocab.DateValueHasEndMonth:   &d.EndMonth,
		vocab.DateValueHasEndDay:     &d.EndDay,
	}

	for key, target := range optional {
		n, ok, err := Int(frag, key)
		if err != nil {
			return nil, err
		}

		if ok {
			v := int(n)
			*target = &v
		}
	}

	return value, nil
}

func decodeDecimal(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	d, err := Decimal(frag, vocab.DecimalValueAsDecimal)
	if err != nil {
		return nil, err
	}

	return &dsp.ReadDecimalValue{ReadValueBase: base, Decimal: d}, nil
}

func decodeGeom(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	raw := String(frag, vocab.GeometryValueAsGeometry)
	value := &dsp.ReadGeomValue{ReadValueBase: base, GeometryString: raw}

	if raw == "" {
		return value, nil
	}

	if err := json.Unmarshal([]byte(raw), &value.Geometry); err != nil {
		return nil, fmt.Errorf("parsing geometry: %w", err)
	}

	return value, nil
}

func decodeGeoname(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	return &dsp.ReadGeonameValue{ReadValueBase: base, Geoname: String(frag, vocab.GeonameValueAsGeonameCode)}, nil
}

func decodeInt(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	n, _, err := Int(frag, vocab.IntValueAsInt)
	if err != nil {
		return nil, err
	}

	return &dsp.ReadIntValue{ReadValueBase: base, Int: n}, nil
}

func decodeInterval(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	start, err := Decimal(frag, vocab.IntervalValueHasStart)
	if err != nil {
		return nil, err
	}

	end, err := Decimal(frag, vocab.IntervalValueHasEnd)
	if err != nil {
		return nil, err
	}

	return &dsp.ReadIntervalValue{ReadValueBase: base, Start: start, End: end}, nil
}

func decodeLink(frag Object, base dsp.ReadValueBase, linked LinkedResourceDecoder) (dsp.ReadValue, error) {
	value := &dsp.ReadLinkValue{ReadValueBase: base}

	targetKey, iriKey := vocab.LinkValueHasTarget, vocab.LinkValueHasTargetIRI
	if _, ok := frag[vocab.LinkValueHasSource]; ok {
		targetKey, iriKey = vocab.LinkValueHasSource, vocab.LinkValueHasSourceIRI
		value.Incoming = true
	} else if _, ok := frag[vocab.LinkValueHasSourceIRI]; ok {
		iriKey = vocab.LinkValueHasSourceIRI
		value.Incoming = true
	}

	value.LinkedResourceIRI = Ref(frag, iriKey)

	if nodes := Objects(frag[targetKey]); len(nodes) > 0 {
		if value.LinkedResourceIRI == "" {
			value.LinkedResourceIRI = ID(nodes[0])
		}

		if linked != nil {
			resource, err := linked(nodes[0])
			if err != nil {
				return nil, fmt.Errorf("decoding linked resource %s: %w", ID(nodes[0]), err)
			}

			value.LinkedResource = resource
		}
	}

	return value, nil
}

func decodeList(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	return &dsp.ReadListValue{ReadValueBase: base, ListNode: Ref(frag, vocab.ListValueAsListNode)}, nil
}

func decodeText(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	if html, ok := Literal(frag, vocab.TextValueAsHTML); ok {
		return &dsp.ReadTextValueAsHTML{ReadValueBase: base, HTML: html, XML: String(frag, vocab.TextValueAsXML)}, nil
	}

	if xml, ok := Literal(frag, vocab.TextValueAsXML); ok {
		return &dsp.ReadTextValueAsXML{ReadValueBase: base, XML: xml, Mapping: Ref(frag, vocab.TextValueHasMapping)}, nil
	}

	return &dsp.ReadTextValueAsString{ReadValueBase: base, Text: base.ValueAsString}, nil
}

func decodeTime(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	ts, err := Time(frag, vocab.TimeValueAsTimeStamp)
	if err != nil {
		return nil, err
	}

	if ts == nil {
		return nil, fmt.Errorf("%w: %s", dsp.ErrMissingField, vocab.TimeValueAsTimeStamp)
	}

	return &dsp.ReadTimeValue{ReadValueBase: base, Time: *ts}, nil
}

func decodeURI(frag Object, base dsp.ReadValueBase) (dsp.ReadValue, error) {
	return &dsp.ReadURIValue{ReadValueBase: base, URI: String(frag, vocab.URIValueAsURI)}, nil
}
