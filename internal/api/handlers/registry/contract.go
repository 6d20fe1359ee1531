package registry

import "context"

// Service операции реестра, общие для клиентов, питомцев, сотрудников и услуг
// C - запрос на создание, U - запрос на изменение, R - ответ
type Service[C, U, R any] interface {
	Create(ctx context.Context, req *C) (*R, error)
	GetByID(ctx context.Context, id int64) (*R, error)
	Update(ctx context.Context, id int64, req *U) (*R, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
	Activate(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, active *bool) ([]R, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
