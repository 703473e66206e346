package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	kerrors "github.com/kryolite/kryogen/internal/errors"
	"github.com/kryolite/kryogen/internal/models"
)

func counterRecord() models.ContractRecord {
	return models.ContractRecord{
		Name: "T",
		Methods: []models.MethodRecord{
			{Name: "GetCount", Readonly: true, Params: []models.ParamRecord{}, ReturnType: "uint64"},
		},
	}
}

func lotteryRecord() models.ContractRecord {
	return models.ContractRecord{
		Name: "Lottery",
		Methods: []models.MethodRecord{
			{
				Name: "BuyTicket",
				Params: []models.ParamRecord{
					{Name: "buyer", DeclaredType: "kryolite.Address"},
					{Name: "count", DeclaredType: "uint32"},
				},
				ReturnType: models.VoidType,
			},
			{Name: "Winners", Readonly: true, ReturnType: "[]kryolite.Address"},
		},
	}
}

func TestEncodeSingleQuery(t *testing.T) {
	data, err := Encode(counterRecord())
	require.NoError(t, err)

	assert.Equal(t, `{
  "name": "T",
  "methods": [
    {
      "name": "GetCount",
      "readonly": true,
      "method_params": [],
      "return_value": {
        "value_type": "uint64"
      }
    }
  ]
}
`, string(data))
}

func TestEncodeParamsAndVoid(t *testing.T) {
	data, err := Encode(lotteryRecord())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"method_params": [
        {
          "name": "buyer",
          "param_type": "kryolite.Address"
        },`)
	assert.Contains(t, string(data), `"value_type": "void"`)
	assert.Contains(t, string(data), `"method_params": []`, "nil params encode as an empty array")
}

func TestEncodeEmptyRecord(t *testing.T) {
	data, err := Encode(models.ContractRecord{Name: "Empty"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Empty\",\n  \"methods\": []\n}\n", string(data))
}

func TestFlushIsDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg", "manifest.json")
	writer := NewWriter(path, zaptest.NewLogger(t))

	require.NoError(t, writer.Flush(lotteryRecord()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, writer.Flush(lotteryRecord()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFlushTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	writer := NewWriter(path, nil)

	require.NoError(t, writer.Flush(lotteryRecord()))
	require.NoError(t, writer.Flush(counterRecord()))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, counterRecord(), loaded)
}

func TestFlushIOFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "pkg")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	err := NewWriter(filepath.Join(blocker, "manifest.json"), nil).Flush(counterRecord())
	require.Error(t, err)
	assert.True(t, kerrors.HasCode(err, kerrors.IOFailureCode))

	var pathErr *fs.PathError
	require.True(t, kerrors.As(err, &pathErr))
	assert.Equal(t, pathErr.Error(), err.Error(), "the filesystem error text is surfaced unmodified")
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, NewWriter(path, nil).Flush(lotteryRecord()))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Lottery", loaded.Name)
	assert.Equal(t, []string{"BuyTicket", "Winners"}, loaded.MethodNames())
	assert.Equal(t, []models.ParamRecord{}, loaded.Methods[1].Params)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, kerrors.HasCode(err, kerrors.IOFailureCode))

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = Load(path)
	assert.True(t, kerrors.HasCode(err, kerrors.MalformedInputCode))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewWriter("", nil).Path())
}
