package main

import (
	"testing"

	"github.com/webstack-art/FormNest/internal/service"
)

func TestDemoFormLetsDriverAssignID(t *testing.T) {
	form := demoForm("host_test")
	if form.ID != "" {
		t.Fatalf("seed form carries a preset id %q; the driver must assign the ObjectID or lookups by hex id will miss", form.ID)
	}
}

func TestDemoFormPassesSchemaValidation(t *testing.T) {
	form := demoForm("host_test")
	if err := service.ValidateSchema(&form); err != nil {
		t.Fatalf("seed form rejected by schema validation: %v", err)
	}
}
