package errcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrAccessors(t *testing.T) {
	e := NewErr(400123, "bad thing", 400)
	require.Equal(t, uint32(400123), e.Code())
	require.Equal(t, "bad thing", e.Msg())
	require.Equal(t, 400, e.HTTPStatus())
	require.Equal(t, "code: 400123, msg: bad thing", e.Error())
}

func TestNewCustomErr(t *testing.T) {
	e := NewCustomErr("ad-hoc")
	require.Equal(t, CodeCustom, e.Code())
	require.Equal(t, 400, e.HTTPStatus())
}

func TestZeroStatusDefaults(t *testing.T) {
	e := NewErr(1, "x", 0)
	require.Equal(t, 400, e.HTTPStatus())
}
