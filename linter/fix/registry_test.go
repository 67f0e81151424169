package fix_test

import (
	"sync"
	"testing"

	"github.com/addonreview/cachelint/linter/fix"
	"github.com/addonreview/cachelint/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixRegistry_GetFix_Success(t *testing.T) {
	t.Parallel()

	registry := fix.NewFixRegistry()
	expected := &mockFix{description: "test fix"}

	registry.Register(validation.RuleMissingCacheSegment, func(_ *validation.Violation) validation.Fix {
		return expected
	})

	result := registry.GetFix(&validation.Violation{Rule: validation.RuleMissingCacheSegment})
	require.NotNil(t, result, "should return a fix")
	assert.Equal(t, "test fix", result.Description())
}

func TestFixRegistry_GetFix_NoProvider(t *testing.T) {
	t.Parallel()

	registry := fix.NewFixRegistry()

	assert.Nil(t, registry.GetFix(&validation.Violation{Rule: "unknown-rule"}))
}

func TestFixRegistry_GetFix_FirstNonNilWins(t *testing.T) {
	t.Parallel()

	registry := fix.NewFixRegistry()
	registry.Register(validation.RuleRawTransportConstruction, func(_ *validation.Violation) validation.Fix {
		return nil
	})
	registry.Register(validation.RuleRawTransportConstruction, func(v *validation.Violation) validation.Fix {
		if v.Line == 0 {
			return nil
		}
		return &mockFix{description: "second"}
	})
	registry.Register(validation.RuleRawTransportConstruction, func(_ *validation.Violation) validation.Fix {
		return &mockFix{description: "third"}
	})

	assert.Equal(t, "second", registry.GetFix(&validation.Violation{Rule: validation.RuleRawTransportConstruction, Line: 3}).Description())
	assert.Equal(t, "third", registry.GetFix(&validation.Violation{Rule: validation.RuleRawTransportConstruction}).Description())
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry := fix.DefaultRegistry()

	v := &validation.Violation{
		Rule: validation.RuleMissingCacheSegment, Line: 1, Column: 7, EndLine: 1, EndColumn: 36,
		Data: map[string]string{"url": "https://a.myshoptet.com/api", "segment": "/cache/"},
	}
	f := registry.GetFix(v)
	require.NotNil(t, f)
	assert.Equal(t, "insert /cache/ after the host", f.Description())

	src := `fetch("https://a.myshoptet.com/api");`
	edit, err := f.Apply(src)
	require.NoError(t, err)
	assert.Equal(t, `fetch("https://a.myshoptet.com/cache/api");`, fix.ApplyEdits(src, []validation.Edit{edit}))

	assert.Nil(t, registry.GetFix(&validation.Violation{Rule: validation.RuleMissingCacheSegment}), "violations without url data cannot be fixed")
	assert.Nil(t, registry.GetFix(&validation.Violation{Rule: validation.RuleRawTransportConstruction}))
}

func TestFixRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := fix.NewFixRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register(validation.RuleMissingCacheSegment, func(_ *validation.Violation) validation.Fix {
				return &mockFix{description: "concurrent"}
			})
		}()
		go func() {
			defer wg.Done()
			_ = registry.GetFix(&validation.Violation{Rule: validation.RuleMissingCacheSegment})
		}()
	}
	wg.Wait()

	assert.NotNil(t, registry.GetFix(&validation.Violation{Rule: validation.RuleMissingCacheSegment}))
}
