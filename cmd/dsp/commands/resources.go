package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
	"github.com/fivetwenty-io/dsp-client/internal/vocab"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// ResourceView is the structured output of a resource. Values are listed in
// property order since the value types do not serialize on their own.
type ResourceView struct {
	dsp.ReadResource `yaml:",inline"`

	Values []ValueView `json:"values" yaml:"values"`
}

// ValueView is the structured output of a single value.
type ValueView struct {
	Property      string `json:"property"                yaml:"property"`
	PropertyLabel string `json:"propertyLabel,omitempty" yaml:"property_label,omitempty"`
	ID            string `json:"id"                      yaml:"id"`
	Type          string `json:"type"                    yaml:"type"`
	Value         string `json:"value"                   yaml:"value"`
	Comment       string `json:"comment,omitempty"       yaml:"comment,omitempty"`
}

// NewResourceCommand creates the resource command group.
func NewResourceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"resources", "res"},
		Short:   "Read and remove resources",
		Long:    "Read, relabel, delete and erase resources of the DSP API",
	}

	cmd.AddCommand(newResourceGetCommand())
	cmd.AddCommand(newResourceDeleteCommand("delete", "Mark a resource as deleted", false))
	cmd.AddCommand(newResourceDeleteCommand("erase", "Erase a resource permanently", true))
	cmd.AddCommand(newResourceUpdateLabelCommand())

	return cmd
}

func newResourceGetCommand() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "get IRI...",
		Short: "Get one or more resources",
		Long: `Get resources with their values. Class, property and list node labels
are resolved through the ontology and list endpoints.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if version != "" && len(args) > 1 {
				return fmt.Errorf("%w, got %d", ErrVersionSingleIRI, len(args))
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			var resources []*dsp.ReadResource

			switch {
			case version != "":
				resource, err := client.Resources().GetResourceVersion(cmd.Context(), args[0], version)
				if err != nil {
					return fmt.Errorf("failed to get resource: %w", err)
				}

				resources = append(resources, resource)
			case len(args) == 1:
				resource, err := client.Resources().GetResource(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get resource: %w", err)
				}

				resources = append(resources, resource)
			default:
				sequence, err := client.Resources().GetResources(cmd.Context(), args)
				if err != nil {
					return fmt.Errorf("failed to get resources: %w", err)
				}

				resources = sequence.Resources
			}

			views := make([]ResourceView, 0, len(resources))
			for _, resource := range resources {
				views = append(views, newResourceView(resource))
			}

			var output interface{} = views
			if len(views) == 1 {
				output = views[0]
			}

			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				for i := range views {
					if i > 0 {
						_, _ = fmt.Fprintln(w)
					}

					if err := displayResourceTable(w, &views[i]); err != nil {
						return err
					}
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "get the resource as it was at this date")

	return cmd
}

func newResourceDeleteCommand(use, short string, erase bool) *cobra.Command {
	var (
		resourceType string
		lastModified string
		comment      string
	)

	cmd := &cobra.Command{
		Use:   use + " IRI",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if resourceType == "" {
				return constants.ErrResourceTypeRequired
			}

			modified, err := normalizeTimestamp(lastModified)
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			request := &dsp.DeleteResource{
				ID:                   args[0],
				Type:                 resourceType,
				DeleteComment:        comment,
				LastModificationDate: modified,
			}

			var response *dsp.DeleteResourceResponse
			if erase {
				response, err = client.Resources().EraseResource(cmd.Context(), request)
			} else {
				response, err = client.Resources().DeleteResource(cmd.Context(), request)
			}

			if err != nil {
				return fmt.Errorf("failed to %s resource: %w", use, err)
			}

			return writeOutput(cmd.OutOrStdout(), response, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, response.Result)

				return err
			})
		},
	}

	cmd.Flags().StringVar(&resourceType, "type", "", "resource class IRI")
	cmd.Flags().StringVar(&lastModified, "last-modification-date", "", "last modification date of the resource")
	cmd.Flags().StringVar(&comment, "comment", "", "reason for the deletion")

	return cmd
}

func newResourceUpdateLabelCommand() *cobra.Command {
	var (
		resourceType string
		lastModified string
	)

	cmd := &cobra.Command{
		Use:   "update-label IRI LABEL",
		Short: "Change the label of a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if resourceType == "" {
				return constants.ErrResourceTypeRequired
			}

			modified, err := normalizeTimestamp(lastModified)
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			response, err := client.Resources().UpdateResourceMetadata(cmd.Context(), &dsp.UpdateResourceMetadata{
				ID:                   args[0],
				Type:                 resourceType,
				Label:                args[1],
				LastModificationDate: modified,
			})
			if err != nil {
				return fmt.Errorf("failed to update resource: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), response, func(w io.Writer) error {
				table := tablewriter.NewWriter(w)
				table.Header("Property", "Value")
				_ = table.Append("IRI", response.ResourceIRI)
				_ = table.Append("Class", response.ResourceClassIRI)
				_ = table.Append("Label", valueOrNA(response.Label))
				_ = table.Append("Last modified", valueOrNA(response.LastModificationDate))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&resourceType, "type", "", "resource class IRI")
	cmd.Flags().StringVar(&lastModified, "last-modification-date", "", "last modification date of the resource")

	return cmd
}

// normalizeTimestamp accepts any common date layout, reading zoneless input as
// UTC, and returns it as an xsd:dateTimeStamp. Empty stays empty.
func normalizeTimestamp(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid last modification date %q: %w", value, err)
	}

	return parsed.UTC().Format(time.RFC3339Nano), nil
}

func newResourceView(resource *dsp.ReadResource) ResourceView {
	view := ResourceView{ReadResource: *resource}

	properties := make([]string, 0, len(resource.Properties))
	for property := range resource.Properties {
		properties = append(properties, property)
	}

	sort.Strings(properties)

	for _, property := range properties {
		for _, value := range resource.Properties[property] {
			common := value.Common()
			view.Values = append(view.Values, ValueView{
				Property:      property,
				PropertyLabel: common.PropertyLabel,
				ID:            common.ID,
				Type:          shortIRI(value.ValueType()),
				Value:         formatValue(value),
				Comment:       common.ValueHasComment,
			})
		}
	}

	return view
}

func displayResourceTable(w io.Writer, view *ResourceView) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	_ = table.Append("IRI", view.ID)
	_ = table.Append("Label", view.Label)
	_ = table.Append("Class", classColumn(&view.ReadResource))
	_ = table.Append("Project", valueOrNA(view.AttachedToProject))
	_ = table.Append("Created", formatTime(view.CreationDate))
	_ = table.Append("Last modified", formatTime(view.LastModificationDate))

	if view.IsDeleted {
		_ = table.Append("Deleted", formatTime(view.DeleteDate))
		_ = table.Append("Delete comment", valueOrNA(view.DeleteComment))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if len(view.Values) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(w)

	values := tablewriter.NewWriter(w)
	values.Header("Property", "Type", "Value")

	for _, value := range view.Values {
		label := value.PropertyLabel
		if label == "" {
			label = shortIRI(value.Property)
		}

		_ = values.Append(label, value.Type, truncate(value.Value))
	}

	if err := values.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func classColumn(resource *dsp.ReadResource) string {
	if resource.ResourceClassLabel == "" {
		return shortIRI(resource.Type)
	}

	return fmt.Sprintf("%s (%s)", resource.ResourceClassLabel, shortIRI(resource.Type))
}

// formatValue renders a value as a single line.
func formatValue(value dsp.ReadValue) string {
	switch v := value.(type) {
	case *dsp.ReadBooleanValue:
		return strconv.FormatBool(v.Bool)
	case *dsp.ReadColorValue:
		return v.Color
	case *dsp.ReadDateValue:
		return formatDate(&v.DateComponents)
	case *dsp.ReadDecimalValue:
		return v.Decimal.String()
	case *dsp.ReadGeomValue:
		return fmt.Sprintf("%s, %d points", v.Geometry.Type, len(v.Geometry.Points))
	case *dsp.ReadGeonameValue:
		return v.Geoname
	case *dsp.ReadIntValue:
		return strconv.FormatInt(v.Int, 10)
	case *dsp.ReadIntervalValue:
		return v.Start.String() + " - " + v.End.String()
	case *dsp.ReadLinkValue:
		return formatLink(v)
	case *dsp.ReadListValue:
		if v.ListNodeLabel != "" {
			return v.ListNodeLabel
		}

		return v.ListNode
	case *dsp.ReadTextValueAsString:
		return v.Text
	case *dsp.ReadTextValueAsXML:
		return v.XML
	case *dsp.ReadTextValueAsHTML:
		return v.HTML
	case *dsp.ReadTimeValue:
		return v.Time.Format(time.RFC3339)
	case *dsp.ReadURIValue:
		return v.URI
	default:
		return value.Common().ValueAsString
	}
}

func formatLink(v *dsp.ReadLinkValue) string {
	target := v.LinkedResourceIRI
	if v.LinkedResource != nil && v.LinkedResource.Label != "" {
		target = v.LinkedResource.Label + " <" + v.LinkedResourceIRI + ">"
	}

	if v.Incoming {
		return "<- " + target
	}

	return "-> " + target
}

func formatDate(d *dsp.DateComponents) string {
	start := formatDatePart(d.StartEra, d.StartYear, d.StartMonth, d.StartDay)
	end := formatDatePart(d.EndEra, d.EndYear, d.EndMonth, d.EndDay)

	if start == end {
		return d.Calendar + ":" + start
	}

	return d.Calendar + ":" + start + ":" + end
}

func formatDatePart(era string, year int, month, day *int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%04d", year)

	if month != nil {
		fmt.Fprintf(&b, "-%02d", *month)

		if day != nil {
			fmt.Fprintf(&b, "-%02d", *day)
		}
	}

	if era != "" {
		b.WriteString(" " + era)
	}

	return b.String()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

// shortIRI drops the knora-api prefix, or keeps the local name after '#'.
func shortIRI(iri string) string {
	if strings.HasPrefix(iri, vocab.KnoraAPI) {
		return "knora-api:" + strings.TrimPrefix(iri, vocab.KnoraAPI)
	}

	if i := strings.LastIndex(iri, "#"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}

	return iri
}
