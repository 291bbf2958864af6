package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/crafthaven/pkg/validate"
)

type listingInput struct {
	Name        string   `json:"name"        validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       int64    `json:"price"       validate:"required,gte=1"`
	Category    string   `json:"category"    validate:"required"`
	Images      []string `json:"images"      validate:"required,min=1,max=5"`
	Stock       int      `json:"stock"       validate:"gte=0"`
	IsActive    *bool    `json:"isActive"    validate:"nullable,boolean"`
}

func validListing() listingInput {
	return listingInput{
		Name:        "Speckled Mug",
		Description: "A 12oz mug glazed in matte white.",
		Price:       2800,
		Category:    "pottery",
		Images:      []string{"https://cdn.example.test/mug.jpg"},
		Stock:       5,
	}
}

func TestValidListing(t *testing.T) {
	if errs := validate.Struct(validListing()); errs.Any() {
		t.Errorf("expected no errors, got: %v", errs.Fields())
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(listingInput{})
	if !errs.Any() {
		t.Fatal("expected required errors")
	}
	fields := errs.Fields()
	for _, f := range []string{"name", "description", "price", "category", "images"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("expected %s to be required", f)
		}
	}
}

func TestFirstIsDeclarationOrdered(t *testing.T) {
	errs := validate.Struct(listingInput{})
	if got := errs.Fields()["name"]; errs.First() != got {
		t.Errorf("expected First to report the name error, got %q", errs.First())
	}
}

func TestStringLengthBounds(t *testing.T) {
	in := validListing()
	in.Name = "X"
	if errs := validate.Struct(in); !errs.Any() {
		t.Error("expected one-char name to fail min=2")
	}
	in = validListing()
	in.Description = "too short"
	if errs := validate.Struct(in); !errs.Any() {
		t.Error("expected nine-char description to fail min=10")
	}
}

func TestSliceLengthBounds(t *testing.T) {
	in := validListing()
	in.Images = []string{"a", "b", "c", "d", "e", "f"}
	if errs := validate.Struct(in); !errs.Any() {
		t.Error("expected six images to fail max=5")
	}
}

func TestNumericBounds(t *testing.T) {
	in := validListing()
	in.Stock = -1
	if errs := validate.Struct(in); !errs.Any() {
		t.Error("expected negative stock to fail gte=0")
	}
}

func TestNullablePointerSkipsRules(t *testing.T) {
	// nil IsActive is allowed; a set one still passes boolean.
	if errs := validate.Struct(validListing()); errs.Any() {
		t.Errorf("expected nil nullable pointer to pass: %v", errs.Fields())
	}
	in := validListing()
	yes := true
	in.IsActive = &yes
	if errs := validate.Struct(in); errs.Any() {
		t.Errorf("expected set boolean to pass: %v", errs.Fields())
	}
}

func TestNullablePointerPresentButEmptyStillValidates(t *testing.T) {
	// A nil pointer means the field was absent; a non-nil pointer to an
	// empty value was deliberately sent and must not dodge the bounds.
	type patch struct {
		Description *string   `json:"description" validate:"nullable,min=10"`
		Images      *[]string `json:"images"      validate:"nullable,min=1,max=5"`
	}

	if errs := validate.Struct(patch{}); errs.Any() {
		t.Errorf("expected absent fields to pass: %v", errs.Fields())
	}

	empty := ""
	none := []string{}
	fields := validate.Struct(patch{Description: &empty, Images: &none}).Fields()
	if _, ok := fields["description"]; !ok {
		t.Error("expected empty description behind a pointer to fail min=10")
	}
	if _, ok := fields["images"]; !ok {
		t.Error("expected empty images behind a pointer to fail min=1")
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Rating int `json:"rating" validate:"required,between=1,5"`
	}
	if errs := validate.Struct(in{Rating: 6}); !errs.Any() {
		t.Error("expected rating 6 to fail")
	}
	if errs := validate.Struct(in{Rating: 3}); errs.Any() {
		t.Errorf("expected rating 3 to pass: %v", errs.Fields())
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=BUYER,SELLER,ADMIN"`
	}
	if errs := validate.Struct(in{Role: "WIZARD"}); !errs.Any() {
		t.Error("expected unknown role to fail")
	}
	if errs := validate.Struct(in{Role: "SELLER"}); errs.Any() {
		t.Errorf("expected SELLER to pass: %v", errs.Fields())
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); !errs.Any() {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "maya@example.test"}); errs.Any() {
		t.Errorf("expected valid email to pass: %v", errs.Fields())
	}
}
