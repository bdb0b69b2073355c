package deploy

// NoticeKind distinguishes success and error notifications.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a user-visible notification produced by the controller.
type Notice struct {
	Kind  NoticeKind
	Title string
	Text  string
}

func (n Notice) IsZero() bool {
	return n.Kind == NoticeNone
}
