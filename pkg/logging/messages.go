package logging

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		// Client
		"API request failed: %s":          "API请求失败: %s",
		"Server %s is offline: %s":        "服务器 %s 不在线: %s",
		"Server %s answered ping with %d": "服务器 %s 的 ping 返回 %d",
		"Password rejected by %s":         "密码被 %s 拒绝",
		"Configured server %s":            "已设置服务器 %s",
		"Request %s %s":                   "请求 %s %s",

		// Blocks
		"Invoking block %s":   "执行积木 %s",
		"Block %s failed: %s": "积木 %s 失败: %s",

		// Runtime
		"Using configuration %s":         "使用配置 %s",
		"Runtime mode: %s":               "运行模式: %s",
		"Loaded %d seed entries from %s": "从 %[2]s 加载了 %[1]d 个种子条目",

		// Sandbox
		"Sandbox listening on %s":       "沙盒服务器监听于 %s",
		"Rejected path %s: %s":          "拒绝路径 %s: %s",
		"Failure injected for %s %s":    "已为 %s %s 注入故障",
		"Interrupted, shutting down...": "已中断，正在关闭...",
	})
}
