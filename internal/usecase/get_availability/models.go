package get_availability

import (
	"time"

	"github.com/m1shk4/AquaWash-BookingService/pkg/types"
)

// Request модель запроса доступности центра на день
type Request struct {
	CenterID        int64
	Date            time.Time
	DurationMinutes int
}

// Response модель ответа с расписанием доступности по слотам
type Response struct {
	CenterID        int64
	Date            time.Time
	DurationMinutes int // шаг сетки слотов центра
	TotalBays       int
	Slots           []Slot
}

// Slot доступность одного временного слота
type Slot struct {
	StartTime     types.TimeString
	AvailableBays int
	Bays          []BayStatus
}

// BayStatus состояние одного поста в слоте
type BayStatus struct {
	BayNumber int
	Available bool
	BookingID *int64 // занявшее пост бронирование, если есть
}

// CheckRequest модель запроса проверки конкретного слота
type CheckRequest struct {
	CenterID        int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int // 0 означает один интервал сетки центра
}

// CheckResponse результат проверки слота
type CheckResponse struct {
	CenterID        int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Capacity        int // всего постов в центре
	FreeCount       int
	Available       bool
	AvailableBays   []int // свободные посты по возрастанию номера
}
