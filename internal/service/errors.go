package service

import "errors"

var (
	ErrLobbyNotFound  = errors.New("房间不存在")
	ErrLobbyFull      = errors.New("房间人数已满")
	ErrLobbyClosed    = errors.New("房间已关闭或对局进行中")
	ErrForbidden      = errors.New("无权执行该操作")
	ErrTooManyLobbies = errors.New("房间数量已达上限")
	ErrLobbyBusy      = errors.New("房间繁忙，请稍后再试")
	ErrInvalidRequest = errors.New("请求参数无效")
)
