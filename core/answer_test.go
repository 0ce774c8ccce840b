package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    bool
		wantErr bool
	}{
		{name: "true", body: "true", want: true},
		{name: "false", body: "false", want: false},
		{name: "yes", body: "yes", want: true},
		{name: "no", body: "no", want: false},
		{name: "mixed case", body: "TRUE", want: true},
		{name: "odd case", body: "TrUe", want: true},
		{name: "surrounding whitespace", body: "  yes\n", want: true},
		{name: "unknown word", body: "maybe", wantErr: true},
		{name: "empty", body: "", wantErr: true},
		{name: "boolean-ish garbage", body: "true!", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAnswer([]byte(tc.body))
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnparseableAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
