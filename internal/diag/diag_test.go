package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/diag"
)

func TestBagSortsByPosition(t *testing.T) {
	b := diag.NewBag()
	b.Report(diag.Diagnostic{File: "a.ts", Start: 10, Code: diag.CodeUnexpectedToken})
	b.Report(diag.Diagnostic{File: "a.ts", Start: 2, Code: diag.CodeUnexpectedToken})
	all := b.All()
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].Start)
	assert.Equal(t, 10, all[1].Start)
}

func TestBagDedupsByPositionAndCode(t *testing.T) {
	b := diag.NewBag()
	d := diag.Diagnostic{File: "a.ts", Start: 5, Length: 3, Code: diag.CodeTypeIsNotAssignableToType}
	b.Report(d)
	b.Report(d)
	assert.Len(t, b.All(), 1)
}

func TestBagDoesNotDedupDifferentCodesSameSpan(t *testing.T) {
	b := diag.NewBag()
	b.Report(diag.Diagnostic{File: "a.ts", Start: 5, Length: 3, Code: diag.CodeTypeIsNotAssignableToType})
	b.Report(diag.Diagnostic{File: "a.ts", Start: 5, Length: 3, Code: diag.CodeExcessPropertyError})
	assert.Len(t, b.All(), 2)
}

func TestHasErrors(t *testing.T) {
	b := diag.NewBag()
	assert.False(t, b.HasErrors())
	b.Report(diag.Diagnostic{Severity: diag.SeverityWarning})
	assert.False(t, b.HasErrors())
	b.Report(diag.Diagnostic{Severity: diag.SeverityError})
	assert.True(t, b.HasErrors())
}
