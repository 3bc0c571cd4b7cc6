package model

// Homework is a single record of the `homeworks` list as the server sent it.
// All fields are kept so that two polls compare by full value.
type Homework map[string]any

func (h Homework) Name() (string, bool) {
	v, ok := h["homework_name"]
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

func (h Homework) Status() (string, bool) {
	v, ok := h["status"]
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

type Response struct {
	Homeworks   []Homework
	CurrentDate int64
}

type Notification struct {
	Topic    string
	Title    string
	Tags     []string
	Message  string
	Priority int
}
