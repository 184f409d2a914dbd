package model

// Annotation is a named metadata attachment (a trait) on a shape.
type Annotation struct {
	ID    ShapeID
	Value *Value
}

// Well-known prelude trait IDs.
var (
	TraitDocumentation = MustShapeID("smithy.api#documentation")
	TraitExternalDocs  = MustShapeID("smithy.api#externalDocumentation")
	TraitDeprecated    = MustShapeID("smithy.api#deprecated")
	TraitSince         = MustShapeID("smithy.api#since")
	TraitUnstable      = MustShapeID("smithy.api#unstable")
	TraitDefault       = MustShapeID("smithy.api#default")
	TraitEnumValue     = MustShapeID("smithy.api#enumValue")
	TraitError         = MustShapeID("smithy.api#error")
	TraitLength        = MustShapeID("smithy.api#length")
	TraitRange         = MustShapeID("smithy.api#range")
	TraitPattern       = MustShapeID("smithy.api#pattern")
	TraitRequired      = MustShapeID("smithy.api#required")
	TraitSensitive     = MustShapeID("smithy.api#sensitive")
	TraitSparse        = MustShapeID("smithy.api#sparse")
	TraitUniqueItems   = MustShapeID("smithy.api#uniqueItems")
	TraitJSONName      = MustShapeID("smithy.api#jsonName")
	TraitMediaType     = MustShapeID("smithy.api#mediaType")
	TraitTimestampFmt  = MustShapeID("smithy.api#timestampFormat")
	TraitStreaming     = MustShapeID("smithy.api#streaming")
	TraitIdempotency   = MustShapeID("smithy.api#idempotencyToken")
)

// IsMarker reports whether the annotation carries no structured payload
// (a null or empty-object value), the annotation-trait case.
func (a *Annotation) IsMarker() bool {
	if a.Value.IsNull() {
		return true
	}
	return a.Value.Kind == ObjectKind && len(a.Value.Entries) == 0
}

// StringPayload returns the payload string and true when the annotation
// carries a bare string value.
func (a *Annotation) StringPayload() (string, bool) {
	if a.Value != nil && a.Value.Kind == StringKind {
		return a.Value.StrVal, true
	}
	return "", false
}
