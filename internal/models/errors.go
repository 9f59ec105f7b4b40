package models

import "errors"

// ErrNotFound возвращается репозиториями, когда запрошенная запись не существует.
// Хэндлеры транслируют её в HTTP 404.
var ErrNotFound = errors.New("record not found")
