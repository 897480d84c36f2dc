package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleRecipe = `# Breakfast Burritos

- **Category**: Breakfast
- **Cuisine**: Mexican
- **Prep Time**: 15 minutes
- **Total Time**: 35 minutes

## Ingredients

### For the Filling

- 8 large eggs
- 1/2 cup milk

### For Assembly

- 4 tortillas

## Instructions

1. Scramble the eggs.
`

func TestParseDocument(t *testing.T) {
	doc := ParseDocument(sampleRecipe)

	assert.Equal(t, "Breakfast Burritos", doc.Title)
	assert.Equal(t, "Breakfast", doc.Fields["Category"])
	assert.Equal(t, "Mexican", doc.Fields["Cuisine"])
	assert.Equal(t, "35 minutes", doc.Fields["Total Time"])
	assert.Equal(t, sampleRecipe, doc.Content)
}

func TestParseDocumentNoTitle(t *testing.T) {
	doc := ParseDocument("- **Name**: Ashuah Patel\n")

	assert.Empty(t, doc.Title)
	assert.Equal(t, "Ashuah Patel", doc.Fields["Name"])
}

func TestDocumentField(t *testing.T) {
	doc := ParseDocument(sampleRecipe)

	assert.Equal(t, "Mexican", doc.Field("Cuisine", "Unknown"))
	assert.Equal(t, "Unknown", doc.Field("Protein", "Unknown"))
}
