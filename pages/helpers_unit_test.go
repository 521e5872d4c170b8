package pages

import (
	"context"
	"testing"

	"github.com/hashicorp/terraform-plugin-go/tftypes"
)

// objectValue builds an object of type typ from vals, setting every attribute
// not present in vals to null.
func objectValue(t *testing.T, typ tftypes.Type, vals map[string]tftypes.Value) tftypes.Value {
	t.Helper()
	obj, ok := typ.(tftypes.Object)
	if !ok {
		t.Fatalf("expected an object type, got %s", typ)
	}
	all := map[string]tftypes.Value{}
	for name, at := range obj.AttributeTypes {
		if v, ok := vals[name]; ok {
			all[name] = v
			continue
		}
		all[name] = tftypes.NewValue(at, nil)
	}
	for name := range vals {
		if _, ok := obj.AttributeTypes[name]; !ok {
			t.Fatalf("attribute %s is not part of the schema", name)
		}
	}
	return tftypes.NewValue(obj, all)
}

func str(v string) tftypes.Value {
	return tftypes.NewValue(tftypes.String, v)
}

func boolean(v bool) tftypes.Value {
	return tftypes.NewValue(tftypes.Bool, v)
}

var testCtx = context.Background()
