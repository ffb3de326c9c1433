package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type plainMessage struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestJSONCodec_Plain(t *testing.T) {
	c := JSONCodec{}
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&plainMessage{ID: "1", Count: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","count":2}`, string(data))

	var out plainMessage
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, plainMessage{ID: "1", Count: 2}, out)

	// empty payloads decode to the zero value
	var empty plainMessage
	require.NoError(t, c.Unmarshal(nil, &empty))
	assert.Equal(t, plainMessage{}, empty)
}

func TestJSONCodec_Proto(t *testing.T) {
	c := JSONCodec{}

	data, err := c.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	data, err = c.Marshal(wrapperspb.String("kiwi"))
	require.NoError(t, err)

	var out wrapperspb.StringValue
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, "kiwi", out.GetValue())
}
