package model

import "time"

// Analysis — сохранённый результат разбора симптомов.
// ID — первые 8 символов UUID; в таком виде идентификатор
// возвращается клиенту и хранится в истории.
type Analysis struct {
	ID     string `gorm:"primaryKey;size:8"`
	UserID *int64 `gorm:"index"` // nil для анонимного запроса

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	// Входные данные анкеты
	Age               int    `gorm:"not null"`
	Phase             string `gorm:"not null"`
	PainLevel         int    `gorm:"not null"`
	FlowIntensity     string
	ContraceptionType string
	Mood              string
	SleepHours        float64
	Fatigue           string
	Headaches         string
	Bloating          string
	DayInCycle        int

	// Фаза, предсказанная по дню цикла; отдельная колонка ради GROUP BY
	PredictedPhase string `gorm:"index"`

	// Полный результат советника в JSON
	Result []byte `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}
