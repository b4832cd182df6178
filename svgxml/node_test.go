package svgxml

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeMarshalsAttributesAndChildren(t *testing.T) {
	n := New("g").Attr("id", "c_1").Attr("transform", "scale(2,2)")
	n.Add(New("path").Attr("d", "M0,0 L1,1"))

	out, err := xml.Marshal(n)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<g id="c_1" transform="scale(2,2)">`)
	assert.Contains(t, s, `<path d="M0,0 L1,1"></path>`)
	assert.Contains(t, s, `</g>`)
}

func TestNodeWithTextContent(t *testing.T) {
	n := New("text").SetText("hello")
	out, err := xml.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, "<text>hello</text>", string(out))
}
