package models

// MediaRef — ссылка на медиафайл дня (аудио, pdf, видео). Содержимое не интерпретируется.
type MediaRef struct {
	Kind string `json:"kind" validate:"required,oneof=audio pdf video"`
	URL  string `json:"url" validate:"required,url"`
}

// ContentDay — материалы одного дня программы.
type ContentDay struct {
	Day         int        `json:"day"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	MediaRefs   []MediaRef `json:"media_refs"`
}

// Program — длина программы в днях. Задаётся конфигурацией при старте.
type Program struct {
	TotalDays int
}

// DefaultTotalDays — длина программы, если в конфиге ничего не задано.
const DefaultTotalDays = 7

// NewProgram возвращает программу заданной длины, подставляя значение по умолчанию.
func NewProgram(totalDays int) Program {
	if totalDays < 1 {
		totalDays = DefaultTotalDays
	}
	return Program{TotalDays: totalDays}
}

// Contains сообщает, входит ли день в программу.
func (p Program) Contains(day int) bool {
	return day >= 1 && day <= p.TotalDays
}
