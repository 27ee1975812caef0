package data

import "github.com/udisondev/openrealm/internal/model"

// SizeClass — габариты основных карманов для расы.
type SizeClass struct {
	PocketWidth  int32
	PocketHeight int32
}

// sizeClassTable хранит size-class данные по расам. Раса без записи
// означает degraded mode: инвентарь возьмёт hardcoded fallback 6×10.
var sizeClassTable = map[model.Race]SizeClass{
	model.RaceHuman: {PocketWidth: 6, PocketHeight: 10},
	model.RaceElf:   {PocketWidth: 6, PocketHeight: 9},
	model.RaceDwarf: {PocketWidth: 7, PocketHeight: 10},
	model.RaceOrc:   {PocketWidth: 7, PocketHeight: 9},
	model.RaceGiant: {PocketWidth: 8, PocketHeight: 11},
}

// PocketDimensions возвращает размеры основных карманов для расы.
// ok=false — size-class данных нет, вызывающий передаёт нули в
// InitMainStorage и получает fallback.
func PocketDimensions(race model.Race) (width, height int32, ok bool) {
	sc, found := sizeClassTable[race]
	if !found {
		return 0, 0, false
	}
	return sc.PocketWidth, sc.PocketHeight, true
}
