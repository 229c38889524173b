package dialogflow

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kailas-cloud/campusbot/internal/domain/params"
)

// Flatten converts Dialogflow parameters into params.Params.
// Nested structs become dotted names, nulls and empty values are dropped.
func Flatten(s *structpb.Struct) params.Params {
	out := params.Params{}
	for name, v := range s.GetFields() {
		flattenValue(out, name, v)
	}
	return out
}

func flattenValue(out params.Params, name string, v *structpb.Value) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		if k.StringValue != "" {
			out[name] = params.String(k.StringValue)
		}
	case *structpb.Value_NumberValue:
		out[name] = params.Number(k.NumberValue)
	case *structpb.Value_BoolValue:
		out[name], _ = params.FromAny(k.BoolValue)
	case *structpb.Value_ListValue:
		items := k.ListValue.AsSlice()
		if len(items) == 0 {
			return
		}
		if val, ok := params.FromAny(items); ok && !val.IsZero() {
			out[name] = val
		}
	case *structpb.Value_StructValue:
		for sub, sv := range k.StructValue.GetFields() {
			flattenValue(out, name+"."+sub, sv)
		}
	}
}
