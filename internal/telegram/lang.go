package telegram

import "github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"

// Pack holds every user-facing string for one language. Three fixed packs,
// no localization framework.
type Pack struct {
	Welcome          string
	Btns             [5]string
	SubErr           string
	Tarif            string
	Wait             string
	Done             string
	NoBal            string
	Cancel           string
	RefText          string
	LangName         string
	GenPrompt        string // expects topic
	BtnCheck         string
	BtnJoin          string
	Error            string
	PaymentSent      string
	AdminPanel       string
	BroadcastStart   string
	BroadcastCancel  string
	BroadcastSent    string // expects count
	HelpText         string
	PackageBtns      [3]string
	BalanceAdded     string // expects amount
	PremiumActivated string
	ShareBtn         string
}

var langs = map[models.Language]Pack{
	models.LangUzbek: {
		Welcome:          "✨ **Slide Master AI Bot**\n\nProfessional taqdimotlar yaratuvchi sun'iy intellekt!\n\n👇 Quyidagi menyudan kerakli bo'limni tanlang:",
		Btns:             [5]string{"💎 Tariflar", "📊 Kabinet", "🤝 Taklif qilish", "📚 Qo'llanma", "🌐 Til / Language"},
		SubErr:           "🔒 **Botdan foydalanish cheklangan!**\n\nDavom etish uchun rasmiy kanalimizga obuna bo'ling:",
		Tarif:            "💎 **TAQDIMOT NARXLARI:**\n\n⚡ **1 ta Slayd:** 990 so'm\n🔥 **5 ta Slayd:** 2,999 so'm\n👑 **VIP Premium (Cheksiz):** 5,999 so'm\n\n💳 **To'lov kartasi:** `9860230107924485`\n👤 **Karta egasi:** Abdujalil A.\n\n📸 *To'lov chekini shu yerga yuboring va paketni tanlang:*",
		Wait:             "🧠 **AI ishlamoqda...**\n\nSlayd tuzilishi generatsiya qilinmoqda. 30-60 soniya vaqt oladi.",
		Done:             "✅ **Taqdimot tayyor!**\n\nFaylni ochish uchun PowerPoint yoki WPS Office ishlating.",
		NoBal:            "⚠️ **Balans yetarli emas!**\n\nHisobni to'ldiring yoki do'stlaringizni taklif qiling.",
		Cancel:           "❌ Bekor qilish",
		RefText:          "🚀 **DO'STLARINGIZNI TAKLIF QILING**\n\n",
		LangName:         "🇺🇿 O'zbekcha",
		GenPrompt:        "Mavzu: %s. Nechta slayd kerak?",
		BtnCheck:         "✅ Obunani tekshirish",
		BtnJoin:          "📢 Kanalga qo'shilish",
		Error:            "⚠️ Xatolik yuz berdi. Iltimos qayta urinib ko'ring.",
		PaymentSent:      "✅ Chek adminga yuborildi. Tez orada javob beriladi.\n\n📋 *To'lov tasdiqlangandan so'ng paket aktivlashtiriladi.*",
		AdminPanel:       "🛠 **Admin panel**\n\nTanlang:",
		BroadcastStart:   "📢 Reklama xabarini yuboring (text):",
		BroadcastCancel:  "❌ Bekor qilindi.",
		BroadcastSent:    "✅ Xabar %d ta foydalanuvchiga yuborildi.",
		HelpText:         "📚 **QO'LLANMA**\n\n1️⃣ Kanalga obuna bo'ling\n2️⃣ Mavzu yozing va slayd sonini tanlang\n3️⃣ AI prezentatsiya yaratadi\n4️⃣ PowerPoint yoki WPS Office'da oching\n\n🤝 Har bir do'stingiz uchun +1 slayd bonus!",
		PackageBtns:      [3]string{"1️⃣ 1 ta Slayd", "5️⃣ 5 ta Slayd", "👑 VIP Premium"},
		BalanceAdded:     "💰 **Balans to'ldirildi!**\n\nHisobingizga **%d ta slayd** qo'shildi!",
		PremiumActivated: "👑 **Tabriklaymiz!**\nVIP Premium statusga o'tdingiz!\nEndi cheksiz slayd yaratishingiz mumkin!",
		ShareBtn:         "📤 Ulashish",
	},
	models.LangRussian: {
		Welcome:          "✨ **Slide Master AI Bot**\n\nИИ для создания профессиональных презентаций!\n\n👇 Выберите раздел из меню:",
		Btns:             [5]string{"💎 Тарифы", "📊 Кабинет", "🤝 Пригласить", "📚 Инструкция", "🌐 Til / Language"},
		SubErr:           "🔒 **Доступ ограничен!**\n\nПодпишитесь на наш канал для продолжения:",
		Tarif:            "💎 **ТАРИФЫ:**\n\n⚡ **1 Слайд:** 990 сум\n🔥 **5 Слайдов:** 2,999 сум\n👑 **VIP Premium (Безлимит):** 5,999 сум\n\n💳 **Карта:** `9860230107924485`\n👤 **Владелец:** Abdujalil A.\n\n📸 *Отправьте скриншот чека и выберите пакет:*",
		Wait:             "🧠 **AI работает...**\n\nГенерируем структуру. 30-60 секунд.",
		Done:             "✅ **Презентация готова!**\n\nИспользуйте PowerPoint или WPS Office.",
		NoBal:            "⚠️ **Недостаточно баланса!**\n\nПополните счет или пригласите друзей.",
		Cancel:           "❌ Отмена",
		RefText:          "🚀 **ПРИГЛАСИТЕ ДРУЗЕЙ**\n\n",
		LangName:         "🇷🇺 Русский",
		GenPrompt:        "Тема: %s. Сколько слайдов нужно?",
		BtnCheck:         "✅ Проверить подписку",
		BtnJoin:          "📢 Подписаться",
		Error:            "⚠️ Произошла ошибка. Попробуйте снова.",
		PaymentSent:      "✅ Чек отправлен администратору.\n\n📋 *После подтверждения пакет будет активирован.*",
		AdminPanel:       "🛠 **Админ панель**\n\nВыберите:",
		BroadcastStart:   "📢 Отправьте рекламное сообщение (text):",
		BroadcastCancel:  "❌ Отменено.",
		BroadcastSent:    "✅ Сообщение отправлено %d пользователям.",
		HelpText:         "📚 **ИНСТРУКЦИЯ**\n\n1️⃣ Подпишитесь на канал\n2️⃣ Напишите тему и выберите количество слайдов\n3️⃣ AI создаст презентацию\n4️⃣ Откройте в PowerPoint или WPS Office\n\n🤝 +1 слайд за каждого приглашенного!",
		PackageBtns:      [3]string{"1️⃣ 1 Слайд", "5️⃣ 5 Слайдов", "👑 VIP Premium"},
		BalanceAdded:     "💰 **Баланс пополнен!**\n\nДобавлено **%d слайдов**!",
		PremiumActivated: "👑 **Поздравляем!**\nВы на VIP Premium! Создавайте неограниченное количество слайдов!",
		ShareBtn:         "📤 Поделиться",
	},
	models.LangEnglish: {
		Welcome:          "✨ **Slide Master AI Bot**\n\nAI-powered professional presentation generator!\n\n👇 Choose a section from the menu:",
		Btns:             [5]string{"💎 Pricing", "📊 Profile", "🤝 Invite", "📚 Guide", "🌐 Til / Language"},
		SubErr:           "🔒 **Access Restricted!**\n\nPlease subscribe to our channel to continue:",
		Tarif:            "💎 **PRICING:**\n\n⚡ **1 Slide:** 990 UZS\n🔥 **5 Slides:** 2,999 UZS\n👑 **VIP Premium (Unlimited):** 5,999 UZS\n\n💳 **Card:** `9860230107924485`\n👤 **Owner:** Abdujalil A.\n\n📸 *Send receipt screenshot here and choose package:*",
		Wait:             "🧠 **AI is thinking...**\n\nGenerating structure and design. 30-60 seconds.",
		Done:             "✅ **Presentation ready!**\n\nOpen with PowerPoint or WPS Office.",
		NoBal:            "⚠️ **Insufficient balance!**\n\nTop up or invite friends for free slides.",
		Cancel:           "❌ Cancel",
		RefText:          "🚀 **INVITE YOUR FRIENDS**\n\n",
		LangName:         "🇬🇧 English",
		GenPrompt:        "Topic: %s. How many slides needed?",
		BtnCheck:         "✅ Check Subscription",
		BtnJoin:          "📢 Join Channel",
		Error:            "⚠️ An error occurred. Please try again.",
		PaymentSent:      "✅ Receipt sent to admin.\n\n📋 *Package will be activated after payment confirmation.*",
		AdminPanel:       "🛠 **Admin Panel**\n\nSelect:",
		BroadcastStart:   "📢 Send broadcast message (text):",
		BroadcastCancel:  "❌ Canceled.",
		BroadcastSent:    "✅ Message sent to %d users.",
		HelpText:         "📚 **GUIDE**\n\n1️⃣ Subscribe to channel\n2️⃣ Write topic and select slide count\n3️⃣ AI creates presentation\n4️⃣ Open in PowerPoint or WPS Office\n\n🤝 +1 slide bonus per invited friend!",
		PackageBtns:      [3]string{"1️⃣ 1 Slide", "5️⃣ 5 Slides", "👑 VIP Premium"},
		BalanceAdded:     "💰 **Balance topped up!**\n\n**%d slides** added to your account!",
		PremiumActivated: "👑 **Congratulations!**\nYou're now VIP Premium! Create unlimited slides!",
		ShareBtn:         "📤 Share",
	},
}

func packFor(lang models.Language) Pack {
	if p, ok := langs[lang]; ok {
		return p
	}
	return langs[models.LangUzbek]
}
