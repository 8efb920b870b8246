package main

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		"Serve the file server protocol from memory": "在内存中提供文件服务器协议",
		"listen address":                                     "监听地址",
		"shared secret clients must send":                    "客户端必须发送的密码",
		"path to a JSON or YAML seed file":                   "JSON 或 YAML 种子文件路径",
		"artificial latency to inject per request":           "每个请求注入的延迟",
		"failure injection (rate=<float>,code=<httpStatus>)": "故障注入（rate=<小数>,code=<HTTP状态码>）",
		"Log level (debug, info, warn, error)":               "日志级别（debug、info、warn、error）",
	})
}
