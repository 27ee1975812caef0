package world

import "sync/atomic"

// ObjectIDGenerator выдаёт уникальные object ID для сущностей мира.
// Централизованная генерация исключает коллизии между акторами и
// предметами.
//
// Диапазоны (соглашение):
//
//	0x00000000 - 0x0FFFFFFF: зарезервировано (0 = invalid/mock)
//	0x10000000 - 0x1FFFFFFF: акторы (creatures)
//	0x30000000 - 0xFFFFFFFF: предметы
type ObjectIDGenerator struct {
	nextCreatureID atomic.Uint32
	nextItemID     atomic.Uint32
}

// NewObjectIDGenerator создаёт генератор с начальными значениями диапазонов.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextCreatureID.Store(0x10000000)
	gen.nextItemID.Store(0x30000000)
	return gen
}

// NextCreatureID выдаёт следующий ID актора. Thread-safe.
func (g *ObjectIDGenerator) NextCreatureID() uint32 {
	return g.nextCreatureID.Add(1)
}

// NextItemID выдаёт следующий ID предмета. Thread-safe.
func (g *ObjectIDGenerator) NextItemID() uint32 {
	return g.nextItemID.Add(1)
}

// EnsureItemFloor поднимает счётчик предметов минимум до floor.
// Вызывается после загрузки персистентных предметов, чтобы новые ID
// не столкнулись с сохранёнными.
func (g *ObjectIDGenerator) EnsureItemFloor(floor uint32) {
	for {
		cur := g.nextItemID.Load()
		if cur >= floor {
			return
		}
		if g.nextItemID.CompareAndSwap(cur, floor) {
			return
		}
	}
}

// Global ID generator (singleton).
var globalIDGenerator = NewObjectIDGenerator()

// IDGenerator возвращает глобальный генератор object ID.
func IDGenerator() *ObjectIDGenerator {
	return globalIDGenerator
}
