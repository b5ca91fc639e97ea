package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
	"github.com/hapkiduki/loadplan-go/internal/application/service"
)

const restraintRequest = `{
  "load_mass": 1000,
  "gravity": 10,
  "directions": {
    "forward":  {"strap_rating_dan": 500, "lashing_angle_deg": 0},
    "rearward": {"strap_rating_dan": 500, "lashing_angle_deg": 0},
    "lateral":  {"strap_rating_dan": 500, "lashing_angle_deg": 0}
  }
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(service.NewCalculatorService(nil, nil), "test")
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCog_Text(t *testing.T) {
	out, err := run(t, `{"points":[{"mass":100,"x":1},{"mass":100,"x":3}]}`, "cog")
	require.NoError(t, err)
	assert.Contains(t, out, "CoG at x=2.00 m")
	assert.Contains(t, out, "Total mass: 200.00 kg")
}

func TestCog_Empty(t *testing.T) {
	out, err := run(t, `{"points":[]}`, "cog")
	require.NoError(t, err)
	assert.Contains(t, out, "No mass entered.")
}

func TestAxles_Flags(t *testing.T) {
	out, err := run(t, "", "axles", "--front-mass", "1000", "--front-x", "1", "--rear-mass", "1000", "--rear-x", "3", "-o", "json")
	require.NoError(t, err)

	var resp dto.CenterOfGravityResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.X)
	assert.InDelta(t, 2.0, *resp.X, 1e-9)
	assert.InDelta(t, 2000.0, resp.TotalMass, 1e-9)
}

func TestAxles_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"front_axle":{"mass":"1000","x":"1"},"rear_axle":{"mass":1000,"x":3}}`), 0o600))

	out, err := run(t, "", "axles", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CoG at x=2.00 m")
}

func TestRestraint_Text(t *testing.T) {
	out, err := run(t, restraintRequest, "restraint")
	require.NoError(t, err)
	assert.Contains(t, out, "[PASS] Forward")
	assert.Contains(t, out, "required 800.0 daN, 2 x 500.0 daN straps")
	assert.Contains(t, out, "Overall: PASS")
}

func TestRestraint_AnchorNote(t *testing.T) {
	req := strings.Replace(restraintRequest, `"gravity": 10,`, `"gravity": 10, "anchor": {"swl_dan": 1000},`, 1)

	out, err := run(t, req, "restraint")
	require.NoError(t, err)
	assert.Contains(t, out, "anchor ok: Anchor OK: 400.0 daN per strap within allowed 1000.0 daN.")
	assert.NotContains(t, out, "SWL NOT CHECKED")
}

func TestCog_OutOfRange(t *testing.T) {
	out, err := run(t, `{"points":[{"mass":1e308,"x":1},{"mass":1e308,"x":2}]}`, "cog")
	require.NoError(t, err)
	assert.Contains(t, out, "Mass or position values out of range.")
	assert.NotContains(t, out, "NaN")
}

func TestRestraint_JSON(t *testing.T) {
	out, err := run(t, restraintRequest, "restraint", "--output", "json")
	require.NoError(t, err)

	var resp dto.RestraintResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Pass)
	require.Len(t, resp.Evaluations, 3)
	assert.Empty(t, resp.ID, "the CLI keeps no history")
}

func TestRestraint_MissingDirection(t *testing.T) {
	_, err := run(t, `{"load_mass":1000,"directions":{}}`, "restraint")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	msg := FormatError(err)
	assert.True(t, strings.HasPrefix(msg, "Error: invalid request"))
	assert.Contains(t, msg, "directions.forward: direction is required")
}

func TestContainer_Fits(t *testing.T) {
	req := `{"container_type":"20ft-standard","asset":{"length":4.5,"width":2.1,"height":2.0,"mass":40000}}`
	out, err := run(t, req, "container")
	require.NoError(t, err)
	assert.Contains(t, out, "Container: 20 ft standard")
	assert.Contains(t, out, "Fits: yes, Normal")
	assert.Contains(t, out, "Payload exceeded by 9520.0 kg")
}

func TestContainer_DoesNotFit(t *testing.T) {
	req := `{"container_type":"20ft-standard","asset":{"length":6.5,"width":2.1,"height":2.0,"mass":1000}}`
	out, err := run(t, req, "container")
	require.NoError(t, err)
	assert.Contains(t, out, "Fits: no")
	assert.Contains(t, out, "Normal:")
}

func TestContainers(t *testing.T) {
	out, err := run(t, "", "containers")
	require.NoError(t, err)
	assert.Contains(t, out, "20ft-standard")
	assert.Contains(t, out, "20ft-high-cube")

	out, err = run(t, "", "containers", "-o", "json")
	require.NoError(t, err)
	var profiles []dto.ContainerProfileResponse
	require.NoError(t, json.Unmarshal([]byte(out), &profiles))
	assert.Len(t, profiles, 2)
}

func TestRequestErrors(t *testing.T) {
	_, err := run(t, `{"points":[],"bogus":1}`, "cog")
	assert.ErrorContains(t, err, "failed to decode request")

	_, err = run(t, "", "cog", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open request file")

	_, err = run(t, "", "containers", "-o", "yaml")
	assert.ErrorContains(t, err, "unknown output format")
}
