package pipelines

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Names(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"nest-baseline", "scale-chain", "spike-stats", "tvb-baseline"}, names)
}

func Test_BuildUnknown(t *testing.T) {
	_, err := Build("does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPipeline))
}

func Test_AllPipelinesValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			wf, err := Build(name)
			require.NoError(t, err)
			assert.True(t, wf.Validate(), "pipeline '%s' must validate", name)
		})
	}
}

func Test_ScaleChain(t *testing.T) {
	wf, err := Build("scale-chain")
	require.NoError(t, err)
	require.True(t, wf.Execute())

	sink, ok := wf.FindNode("sink")
	require.True(t, ok)

	recorded, err := sink.GetOutput("recorded")
	require.NoError(t, err)
	assert.Equal(t, 10.0, recorded)
}

func Test_SpikeStats(t *testing.T) {
	wf, err := Build("spike-stats")
	require.NoError(t, err)
	require.True(t, wf.Execute())

	sink, ok := wf.FindNode("sink")
	require.True(t, ok)

	recorded, err := sink.GetOutput("recorded")
	require.NoError(t, err)

	summary, ok := recorded.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, summary["count"])
	assert.Equal(t, 8.0, summary["min"])
	assert.Equal(t, 15.25, summary["max"])
}

func Test_NestBaseline(t *testing.T) {
	wf, err := Build("nest-baseline")
	require.NoError(t, err)
	require.True(t, wf.Execute())

	sink, ok := wf.FindNode("sink")
	require.True(t, ok)

	recorded, err := sink.GetOutput("recorded")
	require.NoError(t, err)

	params, ok := recorded.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2000.0, params["sim_time"])
	assert.Equal(t, 0.1, params["resolution"])
}

func Test_TvbBaseline(t *testing.T) {
	wf, err := Build("tvb-baseline")
	require.NoError(t, err)
	require.True(t, wf.Execute())

	sink, ok := wf.FindNode("sink")
	require.True(t, ok)

	recorded, err := sink.GetOutput("recorded")
	require.NoError(t, err)

	params, ok := recorded.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.015, params["coupling_strength"])
}

func Test_BuildsAreIndependent(t *testing.T) {
	first, err := Build("scale-chain")
	require.NoError(t, err)

	second, err := Build("scale-chain")
	require.NoError(t, err)

	firstNode, _ := first.FindNode("double")
	secondNode, _ := second.FindNode("double")
	assert.NotSame(t, firstNode, secondNode)
}
