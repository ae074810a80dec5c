package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaming(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Kevin", Upcase("kevin"))
	assert.Equal(t, "kevin", Downcase("Kevin"))
	assert.Equal(t, "", Upcase(""))
	assert.Equal(t, "Élan", Upcase("élan"))
	assert.Equal(t, "setName", SetterName("name"))
	assert.Equal(t, "emptyTags", EmptyMethodName("tags"))
}

func TestPropertyName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		accessor string
		expected string
	}{
		{accessor: "getFoo", expected: "foo"},
		{accessor: "isActive", expected: "active"},
		{accessor: "setBar", expected: "bar"},
		{accessor: "get", expected: "get"},
		{accessor: "name", expected: "name"},
	}

	for _, tc := range testCases {
		t.Run(tc.accessor, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, PropertyName(tc.accessor))
		})
	}
}
