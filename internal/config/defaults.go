package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Sheets defaults
	DefaultCredentialsFile = "service_account.json"

	// Reminder defaults. The interval cadence matches the testing setup; a
	// production deployment sets scheduler.tasks.reminder.schedule to a daily
	// cron expression instead (e.g. "0 2 * * 1-5" for 09:00 WIB on weekdays).
	DefaultReminderInterval     = 60 * time.Second
	DefaultReminderInitialDelay = 10 * time.Second
)

// Default user-visible messages. Strings with format verbs are fmt templates;
// the handlers fill them in the documented order.
var defaultMessages = map[string]string{
	"welcome":          "👋 Selamat datang di Bot Artikel\n\nPilih menu:",
	"not_authorized":   "❌ Kamu tidak punya akses.",
	"ask_title":        "📝 Masukkan judul artikel:",
	"ask_deadline":     "📅 Masukkan deadline (format: YYYY-MM-DD)",
	"ask_author":       "👤 Masukkan username penulis (contoh: @evitaaa)",
	"invalid_deadline": "⚠️ Format deadline salah. Gunakan YYYY-MM-DD, contoh: 2026-02-25.",
	// id, author, title, deadline
	"task_added": "✅ Artikel berhasil ditambahkan!\n\n🆔 ID: %d\n👤 Penulis: %s\n📝 Judul: %s\n📅 Deadline: %s\n📌 Status: pending",
	"save_error": "❌ Gagal menyimpan ke spreadsheet.",
	"cancelled":  "❌ Penambahan artikel dibatalkan.",
	// author, title, deadline
	"reminder":        "📢 <b>REMINDER ARTIKEL</b>\nHalo %s, mohon segera submit ya!\n\n📝 <b>Judul:</b> %s\n📅 <b>Deadline:</b> %s\n\n👇 <i>Klik tombol di bawah jika sudah upload:</i>",
	"reminder_button": "✅ Sudah Submit",
	// id, title, confirming username, time
	"confirmed": "✅ <b>SUDAH DISUBMIT!</b>\n\n🆔 ID: %d\n📝 <b>Judul:</b> %s\n👤 Dikonfirmasi oleh: @%s\n🕒 Waktu: %s",
	// id
	"confirm_fallback": "✅ Tugas ID %d statusnya sudah diupdate jadi DONE!",
	// id
	"task_not_found": "⚠️ Gagal: ID %d tidak ditemukan di Spreadsheet. Cek datanya.",
	"system_error":   "⚠️ Terjadi kesalahan sistem saat update database.",
	"fetch_error":    "Gagal mengambil data.",
	"pending_header": "📋 LIST ARTIKEL BELUM SUBMIT:\n\n",
	"all_clear":      "🎉 Luar biasa! Semua artikel sudah selesai.",
	"list_header":    "📋 SEMUA ARTIKEL:\n\n",
	// pending count, done count
	"recap":      "📊 REKAP:\n\n⏳ Pending: %d\n✅ Done: %d",
	"guide":      "📖 Gunakan bot ini untuk cek & update artikel.",
	"manual":     "📘 Panduan:\n\n1. Admin input artikel lewat /tambah\n2. Bot kirim reminder ke grup\n3. Penulis klik tombol submit",
	"menu_list":  "📋 List",
	"menu_recap": "📊 Rekap",
	"menu_guide": "📖 Petunjuk",
	"menu_manual": "📘 Panduan",
}

// setDefaults sets default values for optional configuration parameters.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("sheets.credentials_file", DefaultCredentialsFile)

	v.SetDefault("scheduler.tasks.reminder.enabled", true)
	v.SetDefault("scheduler.tasks.reminder.interval", DefaultReminderInterval)
	v.SetDefault("scheduler.tasks.reminder.initial_delay", DefaultReminderInitialDelay)

	for key, msg := range defaultMessages {
		v.SetDefault("messages."+key, msg)
	}
}
