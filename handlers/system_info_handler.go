package handlers

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"strike-bot/bot"
	"strike-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

var startTime = time.Now()

func SystemInfoHandler(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)

	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	var dbSizeMB int64
	if info, err := os.Stat(b.GetConfig().DBPath); err == nil {
		dbSizeMB = info.Size() / 1024 / 1024
	}

	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}
	memUsed := uint64(0)
	memTotal := uint64(0)
	platform := "unknown"
	if vm != nil {
		memUsed = vm.Used / 1024 / 1024
		memTotal = vm.Total / 1024 / 1024
	}
	if hostInfo != nil {
		platform = fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Bot status",
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Uptime", Value: time.Since(startTime).Round(time.Second).String(), Inline: true},
			{Name: "Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "Pending confirmations", Value: fmt.Sprintf("%d", b.Workflows.PendingCount()), Inline: true},
			{Name: "CPU", Value: fmt.Sprintf("%d cores, %.1f%%", cpuCount, cpuUsage), Inline: true},
			{Name: "Memory", Value: fmt.Sprintf("%d / %d MB", memUsed, memTotal), Inline: true},
			{Name: "Database size", Value: fmt.Sprintf("%d MB", dbSizeMB), Inline: true},
			{Name: "Host", Value: platform, Inline: true},
			{Name: "Go", Value: runtime.Version(), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := utils.SendEmbedResponse(s, i, embed); err != nil {
		log.Printf("Error sending system info embed: %v", err)
	}
}
