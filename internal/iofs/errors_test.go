package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmikk/adegenet/pkg/errcode"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name   string
		err    error
		code   gn.ErrorCode
		path   string
		errMsg string
	}{
		{"create dir", CreateDirError("/test/dir", cause),
			errcode.CreateDirError, "/test/dir", "cannot create directory"},
		{"copy file", CopyFileError("/test/config.yaml", cause),
			errcode.CopyFileError, "/test/config.yaml", "cannot copy file"},
		{"read file", ReadFileError("/data/geno.csv", cause),
			errcode.ReadFileError, "/data/geno.csv", "cannot read /data/geno.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), "from ")
			assert.Contains(t, gnErr.Err.Error(), tt.errMsg)
			assert.Contains(t, gnErr.Err.Error(), cause.Error())
		})
	}
}
