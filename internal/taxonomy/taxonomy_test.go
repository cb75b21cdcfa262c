package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info TaxonInfo
		want Category
	}{
		{
			name: "whale is marine not animal",
			info: TaxonInfo{ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CETACEA", FamilyName: "BALAENOPTERIDAE"},
			want: CategoryMarine,
		},
		{
			name: "manatee order sirenia",
			info: TaxonInfo{ClassName: "MAMMALIA", OrderName: "SIRENIA"},
			want: CategoryMarine,
		},
		{
			name: "seal family under carnivora",
			info: TaxonInfo{ClassName: "MAMMALIA", OrderName: "CARNIVORA", FamilyName: "PHOCIDAE"},
			want: CategoryMarine,
		},
		{
			name: "walrus family under carnivora",
			info: TaxonInfo{ClassName: "MAMMALIA", OrderName: "CARNIVORA", FamilyName: "ODOBENIDAE"},
			want: CategoryMarine,
		},
		{
			name: "tiger is a land carnivore",
			info: TaxonInfo{ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
			want: CategoryAnimal,
		},
		{
			name: "marine habitat tag wins over everything",
			info: TaxonInfo{ClassName: "MAMMALIA", OrderName: "CARNIVORA", FamilyName: "URSIDAE", Systems: []string{"Marine Neritic", "Terrestrial"}},
			want: CategoryMarine,
		},
		{
			name: "plant kingdom",
			info: TaxonInfo{KingdomName: "PLANTAE", ClassName: "MAGNOLIOPSIDA"},
			want: CategoryPlant,
		},
		{
			name: "insect",
			info: TaxonInfo{ClassName: "INSECTA", KingdomName: "ANIMALIA"},
			want: CategoryInsect,
		},
		{
			name: "spider counts as insect bucket",
			info: TaxonInfo{ClassName: "ARACHNIDA"},
			want: CategoryInsect,
		},
		{
			name: "ray-finned fish",
			info: TaxonInfo{ClassName: "ACTINOPTERYGII"},
			want: CategoryMarine,
		},
		{
			name: "shark",
			info: TaxonInfo{ClassName: "CHONDRICHTHYES"},
			want: CategoryMarine,
		},
		{
			name: "jellyfish",
			info: TaxonInfo{ClassName: "SCYPHOZOA"},
			want: CategoryMarine,
		},
		{
			name: "bird",
			info: TaxonInfo{ClassName: "AVES"},
			want: CategoryAnimal,
		},
		{
			name: "reptile",
			info: TaxonInfo{ClassName: "REPTILIA"},
			want: CategoryAnimal,
		},
		{
			name: "amphibian",
			info: TaxonInfo{ClassName: "AMPHIBIA"},
			want: CategoryAnimal,
		},
		{
			name: "case insensitive input",
			info: TaxonInfo{ClassName: "mammalia", OrderName: "cetacea"},
			want: CategoryMarine,
		},
		{
			name: "empty class and kingdom is unclassifiable",
			info: TaxonInfo{},
			want: CategoryUnknown,
		},
		{
			name: "animalia with unrecognized class is never defaulted",
			info: TaxonInfo{KingdomName: "ANIMALIA", ClassName: "CLITELLATA"},
			want: CategoryUnknown,
		},
		{
			name: "unknown kingdom unknown class",
			info: TaxonInfo{KingdomName: "FUNGI", ClassName: "AGARICOMYCETES"},
			want: CategoryUnknown,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.info))
		})
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"", CategoryUnknown, true},
		{"Animal", CategoryAnimal, true},
		{"animal", CategoryAnimal, true},
		{"PLANT", CategoryPlant, true},
		{" marine ", CategoryMarine, true},
		{"insect", CategoryInsect, true},
		{"fish", CategoryUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCategoryValid(t *testing.T) {
	t.Parallel()

	assert.True(t, CategoryAnimal.Valid())
	assert.True(t, CategoryMarine.Valid())
	assert.False(t, CategoryUnknown.Valid())
	assert.False(t, Category("Fish").Valid())
}
