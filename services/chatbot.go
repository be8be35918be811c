package services

import "strings"

const ChatFallback = "I'm sorry, I don't understand that question. Please try asking something else or contact our staff for assistance."

type QA struct {
	Topic    string `json:"-"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ChatReply struct {
	Answer   string  `json:"answer"`
	Question *string `json:"question"`
}

// Chatbot không đổi sau khi khởi tạo, dùng chung giữa các goroutine.
type Chatbot struct {
	entries []QA
	words   []map[string]struct{}
}

func NewChatbot(entries []QA) *Chatbot {
	cb := &Chatbot{
		entries: append([]QA(nil), entries...),
		words:   make([]map[string]struct{}, len(entries)),
	}
	for i, e := range cb.entries {
		cb.words[i] = wordSet(e.Question)
	}
	return cb
}

func NewDefaultChatbot() *Chatbot {
	return NewChatbot(DefaultKnowledgeBase)
}

func (c *Chatbot) Questions() []QA {
	return append([]QA(nil), c.entries...)
}

// Answer chọn câu hỏi có nhiều từ chung nhất; bằng điểm thì câu đứng trước thắng.
func (c *Chatbot) Answer(query string) ChatReply {
	qwords := wordSet(query)
	best, highest := -1, 0
	for i := range c.entries {
		score := overlap(qwords, c.words[i])
		if score > highest {
			best, highest = i, score
		}
	}
	if best < 0 {
		chatQueries.WithLabelValues("fallback").Inc()
		return ChatReply{Answer: ChatFallback}
	}
	chatQueries.WithLabelValues(c.entries[best].Topic).Inc()
	q := c.entries[best].Question
	return ChatReply{Answer: c.entries[best].Answer, Question: &q}
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

func overlap(query, words map[string]struct{}) int {
	n := 0
	for w := range query {
		if _, ok := words[w]; ok {
			n++
		}
	}
	return n
}

// DefaultKnowledgeBase giữ nguyên thứ tự, thứ tự quyết định khi bằng điểm.
var DefaultKnowledgeBase = []QA{
	{
		Topic:    "booking",
		Question: "How can I make a booking?",
		Answer:   "You have two options to make a booking:\n1. Use our online booking system: Click the 'Book Now' button on our homepage\n2. Contact us directly:\n   - Phone: +94 234 567 890\n   - Email: contact@coralbayhotel.com\n\nOur staff will be happy to assist you with your reservation.",
	},
	{
		Topic:    "check_in",
		Question: "What are the check-in and check-out times?",
		Answer:   "Our check-in and check-out times are:\n- Check-in: 2:00 PM\n- Check-out: 11:00 AM\n\nEarly check-in or late check-out may be available upon request, subject to availability.",
	},
	{
		Topic:    "contact",
		Question: "What are your contact details?",
		Answer:   "You can reach us through:\n- Phone: +94 234 567 890\n- Email: contact@coralbayhotel.com\n- Address: 123 Coral Street, Hikkaduwa, Sri Lanka\n\nOur front desk is available 24/7 to assist you.",
	},
	{
		Topic:    "room_prices",
		Question: "What are your room rates?",
		Answer:   "Our current room rates per night are:\n- Single Room: $50\n- Double Room: $80\n- Family Room: $120\n\nRates may vary during peak seasons. Contact us for special deals and group bookings.",
	},
	{
		Topic:    "amenities",
		Question: "What amenities do you offer?",
		Answer:   "We offer a range of amenities including:\n- Swimming pool\n- Free Wi-Fi throughout the property\n- Free parking (both outdoor and covered)\n- Restaurant\n- Room service\n- 24/7 front desk\n- Air conditioning\n- TV in all rooms\n- Private bathroom in all rooms",
	},
	{
		Topic:    "wifi",
		Question: "Do you have Wi-Fi?",
		Answer:   "Yes, we provide free Wi-Fi access throughout the hotel for all our guests. The network details will be provided during check-in.",
	},
	{
		Topic:    "swimming_pool",
		Question: "Do you have a swimming pool?",
		Answer:   "Yes, we have a swimming pool available for all our guests. The pool is open daily from 7:00 AM to 9:00 PM.",
	},
	{
		Topic:    "parking",
		Question: "Is parking available?",
		Answer:   "Yes, we offer free parking for all our guests. Both outdoor and covered parking spaces are available on a first-come, first-served basis.",
	},
	{
		Topic:    "cancellation",
		Question: "What is your cancellation policy?",
		Answer:   "You can cancel your booking up to 24 hours before check-in without any charge. For cancellations less than 24 hours before check-in, one night's stay will be charged.",
	},
	{
		Topic:    "pets",
		Question: "Are pets allowed?",
		Answer:   "We welcome pets in designated pet-friendly rooms. There is an additional charge of $20 per night per pet. Please inform us in advance if you plan to bring a pet.",
	},
	{
		Topic:    "restaurant",
		Question: "Do you have a restaurant?",
		Answer:   "Yes, our on-site restaurant serves:\n- Breakfast: 6:30 AM - 10:30 AM\n- Lunch: 12:00 PM - 3:00 PM\n- Dinner: 6:00 PM - 10:00 PM\n\nRoom service is also available during these hours.",
	},
	{
		Topic:    "location",
		Question: "How far are you from the beach?",
		Answer:   "We are located directly on Hikkaduwa Beach at 123 Coral Street. All our ocean-view rooms offer stunning views of the Indian Ocean, and the beach is just steps away from the hotel.",
	},
}
