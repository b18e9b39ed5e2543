package mapping

import (
	"testing"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entity struct {
	Name string
	Age  int
}

type model struct {
	Name string
}

func TestRegisterAndMap(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, Register(r, func(e *entity) model { return model{Name: e.Name} }))
	assert.True(t, Has[*entity, model](r))
	assert.False(t, Has[entity, model](r))

	m, err := Map[*entity, model](r, &entity{Name: "go"})
	require.NoError(t, err)
	assert.Equal(t, model{Name: "go"}, m)

	ms, err := MapSlice[*entity, model](r, []*entity{{Name: "a"}, {Name: "b"}})
	require.NoError(t, err)
	assert.Equal(t, []model{{Name: "a"}, {Name: "b"}}, ms)

	project := Projector[*entity, model](r)
	m, err = project(&entity{Name: "c"})
	require.NoError(t, err)
	assert.Equal(t, "c", m.Name)
}

func TestMissingMappingIsConfigurationError(t *testing.T) {
	r := NewRegistry()

	_, err := Map[entity, model](r, entity{})
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "mapping.entity")

	_, err = MapSlice[entity, model](r, []entity{{}})
	require.ErrorAs(t, err, &cfgErr)
}

func TestDuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	fn := func(e entity) model { return model{} }
	require.NoError(t, Register(r, fn))

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, Register(r, fn), &cfgErr)
	require.ErrorAs(t, Register[entity, model](r, nil), &cfgErr)
}
