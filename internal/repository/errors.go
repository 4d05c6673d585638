package repository

import "errors"

// 預期中的查詢結果，不是存儲故障
// 調用方用 errors.Is 區分「註冊被拒」「帳密錯誤」和真正的存儲錯誤
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
)
