// Package api 處理 HTTP 路由和 WebSocket 連接的升級。
//
// 這個包包含靜態資源、輔助 API 端點和 /ws 升級入口的路由設置，
// 負責把新連接交給 service 層的 WebSocket 管理器。
package api
