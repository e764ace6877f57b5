package i18n

var messagesID = map[string]string{
	"common.success":         "Berhasil",
	"error.bad_request":      "Permintaan tidak valid",
	"error.unauthorized":     "Sesi tidak valid, silakan login kembali",
	"error.forbidden":        "Akses ditolak",
	"error.not_found":        "Data tidak ditemukan",
	"error.too_many":         "Terlalu banyak percobaan, silakan coba lagi nanti",
	"error.internal":         "Terjadi kesalahan pada server",
	"error.storage":          "Gagal menyimpan data, silakan coba lagi",
	"error.external":         "Layanan eksternal tidak tersedia",
	"error.invalid_state":    "Status wakaf tidak sesuai untuk tindakan ini",
	"error.missing_fields":   "Data wajib belum lengkap",
	"error.invalid_qty":      "Jumlah voucher minimal 1",
	"error.total_mismatch":   "Total tidak sesuai dengan jumlah voucher",
	"error.code_exhausted":   "Gagal membuat Kode Registrasi, silakan coba lagi",
	"error.code_required":    "Kode Registrasi tidak boleh kosong!",
	"error.proof_required":   "Bukti Transfer tidak boleh kosong!",
	"error.proof_too_large":  "Ukuran Bukti Transfer melebihi %d MB",
	"error.proof_type":       "Format Bukti Transfer harus PNG, JPG, GIF, WEBP atau PDF",
	"error.donation_missing": "Data Wakaf tidak ditemukan! Silakan periksa Kode Registrasi Anda.",
	"error.captcha_invalid":  "Kode captcha salah",
	"error.login_failed":     "Email atau kata sandi salah",
	"error.email_required":   "Email dan kata sandi wajib diisi",
	"error.email_exists":     "Email sudah terdaftar",
	"error.weak_password":    "Kata sandi terlalu lemah",
	"error.password_min":     "Kata sandi minimal %d karakter",
	"error.password_upper":   "Kata sandi harus mengandung huruf besar",
	"error.password_lower":   "Kata sandi harus mengandung huruf kecil",
	"error.password_number":  "Kata sandi harus mengandung angka",
	"error.password_symbol":  "Kata sandi harus mengandung simbol",
	"error.self_delete":      "Tidak dapat menghapus akun sendiri",
	"error.admin_missing":    "Admin tidak ditemukan",
	"error.setup_done":       "Akun admin sudah ada, silakan login",
	"error.template_invalid": "Template sertifikat harus berupa gambar PNG atau JPG",
	"error.price_invalid":    "Harga voucher harus lebih dari 0",
	"donation.created":       "Komitmen wakaf berhasil dicatat",
	"donation.confirmed":     "Wakaf berhasil dikonfirmasi!",
	"donation.approved":      "Wakaf berhasil disetujui",
	"donation.notify_failed": "Status diperbarui, tetapi notifikasi WhatsApp gagal dikirim",
	"donation.deleted":       "Data wakaf berhasil dihapus",
	"admin.created":          "Admin berhasil dibuat",
	"admin.deleted":          "Admin berhasil dihapus",
	"error.auth_header":      "Header Authorization tidak valid",
	"error.token_invalid":    "Token tidak valid atau sudah kedaluwarsa",
	"error.token_revoked":    "Token sudah dicabut, silakan login kembali",
	"error.rate_limited":     "Terlalu banyak permintaan, coba lagi dalam %d detik",
	"error.rate_limit_down":  "Layanan pembatas permintaan tidak tersedia",
	"donation.certificate":   "Sertifikat berhasil dibuat",
	"donation.sent":          "Voucher ditandai sudah dikirim",
	"donation.updated":       "Data wakaf berhasil diperbarui",
	"setting.updated":        "Pengaturan berhasil disimpan",
	"template.updated":       "Template sertifikat berhasil diunggah",
}

var messagesEN = map[string]string{
	"common.success":         "Success",
	"error.bad_request":      "Invalid request",
	"error.unauthorized":     "Session is invalid, please log in again",
	"error.forbidden":        "Access denied",
	"error.not_found":        "Record not found",
	"error.too_many":         "Too many attempts, please try again later",
	"error.internal":         "Internal server error",
	"error.storage":          "Failed to store data, please retry",
	"error.external":         "External service unavailable",
	"error.invalid_state":    "Donation status does not allow this action",
	"error.missing_fields":   "Missing required fields",
	"error.invalid_qty":      "Quantity must be at least 1",
	"error.total_mismatch":   "Grand total does not match the voucher quantity",
	"error.code_exhausted":   "Could not generate a registration code, please retry",
	"error.code_required":    "Registration code is required",
	"error.proof_required":   "Proof of transfer is required",
	"error.proof_too_large":  "Proof of transfer exceeds %d MB",
	"error.proof_type":       "Proof of transfer must be PNG, JPG, GIF, WEBP or PDF",
	"error.donation_missing": "Donation not found, please check your registration code",
	"error.captcha_invalid":  "Invalid captcha",
	"error.login_failed":     "Invalid email or password",
	"error.email_required":   "Email and password are required",
	"error.email_exists":     "Email already registered",
	"error.weak_password":    "Password is too weak",
	"error.password_min":     "Password must be at least %d characters",
	"error.password_upper":   "Password must contain an upper-case letter",
	"error.password_lower":   "Password must contain a lower-case letter",
	"error.password_number":  "Password must contain a digit",
	"error.password_symbol":  "Password must contain a symbol",
	"error.self_delete":      "Cannot delete your own account",
	"error.admin_missing":    "Admin not found",
	"error.setup_done":       "Admin account already exists. Please login instead.",
	"error.template_invalid": "Certificate template must be a PNG or JPG image",
	"error.price_invalid":    "Voucher price must be greater than 0",
	"donation.created":       "Donation commitment recorded",
	"donation.confirmed":     "Donation confirmed",
	"donation.approved":      "Donation approved",
	"donation.notify_failed": "Status updated, but the WhatsApp notification failed",
	"donation.deleted":       "Donation deleted",
	"admin.created":          "Admin created",
	"admin.deleted":          "Admin deleted",
	"error.auth_header":      "Invalid Authorization header",
	"error.token_invalid":    "Token is invalid or expired",
	"error.token_revoked":    "Token has been revoked, please login again",
	"error.rate_limited":     "Too many requests, retry in %d seconds",
	"error.rate_limit_down":  "Rate limiter unavailable",
	"donation.certificate":   "Certificate generated",
	"donation.sent":          "Voucher marked as sent",
	"donation.updated":       "Donation updated",
	"setting.updated":        "Settings saved",
	"template.updated":       "Certificate template uploaded",
}
