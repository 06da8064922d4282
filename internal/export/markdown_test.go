package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	dict := sampleDictionary()
	dict.Events[0].CodeSample = "datadogRum.addAction('checkout_completed');"

	require.NoError(t, WriteMarkdown(&buf, &dict))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Analytics Event Dictionary"))
	assert.Contains(t, out, "Version 1.0")
	assert.Contains(t, out, "2 events")

	// Summary table lists both events.
	assert.Contains(t, out, "| `checkout_completed` | success | action |")
	assert.Contains(t, out, "| `payment_failed` | failure | error |")

	// Detail sections.
	assert.Contains(t, out, "## `checkout_completed`")
	assert.Contains(t, out, "- **Trigger:** payment confirmed")
	assert.Contains(t, out, "- **Actor / Object:** shopper / order")
	assert.Contains(t, out, "- **Context keys:** session_id, tenant_id")
	assert.Contains(t, out, "| `order_total` | number | Yes |")
	assert.Contains(t, out, "- **Error:** CARD_DECLINED card was declined")
	assert.Contains(t, out, "```js\ndatadogRum.addAction('checkout_completed');\n```")
}

func TestWriteMarkdown_EscapesPipesInTables(t *testing.T) {
	var buf bytes.Buffer
	dict := sampleDictionary()
	dict.Events = dict.Events[:1]
	dict.Events[0].TriggerCondition = "either | or"

	require.NoError(t, WriteMarkdown(&buf, &dict))
	assert.Contains(t, buf.String(), `either \| or`)
}

func TestWriteExcel_ProducesWorkbook(t *testing.T) {
	var buf bytes.Buffer
	dict := sampleDictionary()

	require.NoError(t, WriteExcel(&buf, &dict))

	// XLSX files are zip archives; PK magic is enough of a smoke check here.
	require.Greater(t, buf.Len(), 4)
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}
