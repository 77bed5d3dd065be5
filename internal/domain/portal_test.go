package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPortal(t *testing.T) {
	for _, name := range PortalNames() {
		t.Run(name, func(t *testing.T) {
			p, ok := LookupPortal(name)
			require.True(t, ok)
			assert.Equal(t, name, p.Name)
		})
	}

	_, ok := LookupPortal("fewsnet")
	assert.False(t, ok, "portal names are case sensitive")

	_, ok = LookupPortal("Atlantis")
	assert.False(t, ok)
}

func TestPortalProfile_SortFields(t *testing.T) {
	fewsnet, ok := LookupPortal("FEWSNET")
	require.True(t, ok)

	sorted := fewsnet.SortFields([]string{"bpc", "bt1", "rgt1", "rgp2", "rg1"})
	assert.Equal(t, []string{"rg1", "rgt1", "rgp2", "bt1", "bpc"}, sorted)
}

func TestPortalProfile_SortFields_DoesNotMutateInput(t *testing.T) {
	barbados, ok := LookupPortal("Barbados")
	require.True(t, ok)

	fields := []string{"uv1", "t1"}
	_ = barbados.SortFields(fields)
	assert.Equal(t, []string{"uv1", "t1"}, fields)
}

func TestPortalProfile_SortFields_NoCanonicalOrder(t *testing.T) {
	kenya, ok := LookupPortal("Kenya")
	require.True(t, ok)
	require.Empty(t, kenya.FieldOrder)

	fields := []string{"t9", "t3", "t5"}
	assert.Equal(t, fields, kenya.SortFields(fields), "discovery order is preserved")
}

func TestPortalGlossaries(t *testing.T) {
	withGlossary := []string{
		"Barbados", "Trinidad", "3D PAWS", "3D Calibration", "FEWSNET", "Dominican Republic",
	}
	for _, name := range withGlossary {
		t.Run(name, func(t *testing.T) {
			p, ok := LookupPortal(name)
			require.True(t, ok)
			require.NotEmpty(t, p.Glossary)

			// Every glossary shortname the portal documents should also be
			// present in its canonical ordering.
			order := make(map[string]struct{}, len(p.FieldOrder))
			for _, f := range p.FieldOrder {
				order[f] = struct{}{}
			}
			for _, entry := range p.Glossary {
				assert.Contains(t, order, entry.Shortname)
			}
		})
	}
}
