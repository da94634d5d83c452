// Package action defines the primitive edit records exchanged by the
// document engine and their JSON wire format.
//
// An Operation pairs a forward action list with its inverse and the tree path
// of the node that produced it. Paths alternate slot and component indices
// from the root component downwards, so an odd-length path addresses a slot
// and an even-length path addresses a component.
//
// Actions are applied strictly in order against a cursor that starts at 0:
//
//	{"type":"retain","index":4,"formats":{"bold":true}}
//	{"type":"insert","content":"hello","formats":{"bold":true}}
//	{"type":"delete","count":3}
//	{"type":"attrSet","name":"align","value":"center"}
//	{"type":"propSet","name":"checked","value":true}
//	{"type":"insertSlot","slot":{...}}
//
// Retain indices are absolute and delete removes the count units before
// the cursor. Replaying UnApply right after Apply restores the prior state.
//
// The package also holds the serialized forms of slots and components
// (SlotLiteral and ComponentLiteral) since insert payloads carry them.
package action
