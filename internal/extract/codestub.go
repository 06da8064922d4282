package extract

import (
	"fmt"
	"strings"

	"eventlex/internal/domain"
)

// CodeSampleStub generates an instrumentation snippet for events the model
// did not supply one for. The normalizer guarantees the field is populated
// before returning; richer templating belongs to the exporters.
func CodeSampleStub(ev *domain.DictionaryEvent) string {
	switch ev.APIBinding {
	case domain.BindingAddFeatureFlag:
		return fmt.Sprintf("datadogRum.addFeatureFlagEvaluation('%s', value);", ev.Name)
	case domain.BindingAddError:
		message := ev.ErrorMessage
		if message == "" {
			message = ev.Name
		}
		return fmt.Sprintf("datadogRum.addError(new Error('%s'), { event: '%s' });", escapeSingle(message), ev.Name)
	default:
		if len(ev.Properties) == 0 {
			return fmt.Sprintf("datadogRum.addAction('%s');", ev.Name)
		}
		return fmt.Sprintf("datadogRum.addAction('%s', { %s });", ev.Name, propertyArgs(ev.Properties))
	}
}

func propertyArgs(props []domain.Property) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, p.Name+": undefined")
	}
	return strings.Join(parts, ", ")
}

func escapeSingle(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
