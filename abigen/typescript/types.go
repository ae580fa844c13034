package typescript

import (
	"github.com/broady/abi2ts/abigen/ir"
)

// extendedAssetType is the JSON shape of an extended_asset.
const extendedAssetType = "{ quantity: string; contract: string }"

// PrimitiveType returns the default TypeScript type for a built-in ABI
// scalar, following the JSON encoding produced by nodeos and eosjs.
func PrimitiveType(p *ir.PrimitiveDescriptor) string {
	switch p.PrimitiveKind {
	case ir.PrimitiveBool:
		return "boolean"
	case ir.PrimitiveInt, ir.PrimitiveFloat:
		return "number"
	case ir.PrimitiveBigInt:
		return "number | string" // large values are sent as decimal strings
	case ir.PrimitiveString:
		return "string"
	case ir.PrimitiveBytes:
		return "string" // hex
	case ir.PrimitiveTime:
		return "string" // ISO 8601
	case ir.PrimitiveObject:
		return extendedAssetType
	default:
		return "unknown"
	}
}
