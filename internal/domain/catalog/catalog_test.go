package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerMatches(t *testing.T) {
	c := Customer{Name: "ABC Company", Mobile: "9876543210", GST: "29ABCDE1234F1Z5"}

	tests := []struct {
		name string
		term string
		want bool
	}{
		{"empty term", "", true},
		{"name lower case", "abc", true},
		{"mobile substring", "43210", true},
		{"gst lower case", "29abcde", true},
		{"no match", "xyz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Matches(tt.term))
		})
	}
}

func TestProductMatchesSpecifications(t *testing.T) {
	p := SeedProducts()[3]
	assert.True(t, p.Matches("GATES"))
	assert.True(t, p.Matches("eglu"))
	assert.False(t, p.Matches("curtain"))
}

func TestFilterKeepsOrder(t *testing.T) {
	people := SeedSalespeople()
	got := Filter(people, " region ")
	assert.Len(t, got, 3)
	assert.Equal(t, "John Doe", got[0].Name)

	got = Filter(people, "south")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Jane Smith", got[0].Name)
	}
}

func TestSalespersonContact(t *testing.T) {
	assert.Equal(t, "1 / a@b.c", Salesperson{Mobile: "1", Email: "a@b.c"}.Contact())
	assert.Equal(t, "1", Salesperson{Mobile: "1"}.Contact())
	assert.Equal(t, "a@b.c", Salesperson{Email: "a@b.c"}.Contact())
}
