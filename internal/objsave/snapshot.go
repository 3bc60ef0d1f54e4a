package objsave

import (
	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/storage"
)

// Snapshot captures oi at location. Text fields are only recorded when they
// differ from the prototype. The weight recorded is oi.Weight as it stands, so callers that
// save containers must first remove the contents weight (see Flatten).
func Snapshot(oi *game.ObjectInstance, location int) Record {
	rec := Record{
		Prototype:  oi.Object.Id(),
		Location:   location,
		Type:       oi.Type,
		Values:     oi.Values,
		ExtraFlags: oi.ExtraFlags,
		WearFlags:  oi.WearFlags,
		Weight:     oi.Weight,
		Cost:       oi.Cost,
		Timer:      oi.Timer,
	}

	switch def := oi.Prototype(); {
	case def != nil:
		rec.Name = override(oi.Name, def.Name())
		rec.ShortDesc = override(oi.ShortDesc, def.ShortDesc)
		rec.LongDesc = override(oi.LongDesc, def.LongDesc)
		rec.DetailedDesc = override(oi.DetailedDesc, def.DetailedDesc)
	case oi.IsPlaceholder():
		// Only keep text that came from the save file, so the prototype's
		// text takes over again if it is ever restored.
		rec.Name = override(oi.Name, game.PlaceholderName)
		rec.ShortDesc = override(oi.ShortDesc, game.PlaceholderShortDesc)
		rec.LongDesc = override(oi.LongDesc, game.PlaceholderLongDesc)
		rec.DetailedDesc = override(oi.DetailedDesc, "")
	default:
		rec.Name = override(oi.Name, "")
		rec.ShortDesc = override(oi.ShortDesc, "")
		rec.LongDesc = override(oi.LongDesc, "")
		rec.DetailedDesc = override(oi.DetailedDesc, "")
	}
	return rec
}

// override returns val when it differs from def, otherwise nil.
func override(val, def string) *string {
	if val == def {
		return nil
	}
	return &val
}

// Materialize builds an object from rec. When the record references a
// prototype that no longer exists a placeholder is returned carrying the
// record's data, and found is false.
func Materialize(rec Record, protos Prototypes) (oi *game.ObjectInstance, found bool) {
	found = true
	switch {
	case rec.Prototype == "":
		oi = game.NewObjectInstance(storage.SmartIdentifier[*game.Object]{})
	default:
		var def *game.Object
		if protos != nil {
			def = protos.Get(rec.Prototype)
		}
		if def == nil {
			oi = game.NewPlaceholder(rec.Prototype)
			found = false
		} else {
			oi = game.NewObjectInstance(storage.NewResolvedSmartIdentifier(rec.Prototype, def))
		}
	}

	if found || rec.Type != game.ObjectTypeUnknown {
		oi.Type = rec.Type
	}
	oi.Values = rec.Values
	oi.ExtraFlags = rec.ExtraFlags
	oi.WearFlags = rec.WearFlags
	oi.Weight = rec.Weight
	oi.Cost = rec.Cost
	oi.Timer = rec.Timer

	if rec.Name != nil {
		oi.Name = *rec.Name
	}
	if rec.ShortDesc != nil {
		oi.ShortDesc = *rec.ShortDesc
	}
	if rec.LongDesc != nil {
		oi.LongDesc = *rec.LongDesc
	}
	if rec.DetailedDesc != nil {
		oi.DetailedDesc = *rec.DetailedDesc
	}
	return oi, found
}
