package gazetteer

// DefaultPlaces is the built-in catalog of well known cities and tourist
// destinations, in match-priority order.
var DefaultPlaces = []string{
	// India
	"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Kolkata",
	"Pune", "Ahmedabad", "Jaipur", "Lucknow", "Kanpur", "Nagpur", "Indore", "Bhopal",
	"Visakhapatnam", "Patna", "Vadodara", "Ghaziabad", "Ludhiana", "Agra",
	"Nashik", "Faridabad", "Meerut", "Rajkot", "Varanasi", "Srinagar",
	"Amritsar", "Chandigarh", "Jodhpur", "Guwahati", "Udaipur", "Goa", "Kerala",
	"Manali", "Shimla", "Rishikesh", "Haridwar", "Mysore", "Ooty", "Coorg",
	"Darjeeling", "Ladakh", "Pondicherry", "Hampi", "Khajuraho", "Kochi",

	// United States
	"New York", "New York City", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia",
	"San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville",
	"Fort Worth", "Columbus", "San Francisco", "Charlotte", "Indianapolis",
	"Seattle", "Denver", "Washington", "Boston", "El Paso", "Nashville",
	"Detroit", "Oklahoma City", "Portland", "Las Vegas", "Memphis", "Louisville",
	"Baltimore", "Milwaukee", "Albuquerque", "Tucson", "Fresno", "Sacramento",
	"Kansas City", "Mesa", "Atlanta", "Omaha", "Colorado Springs", "Raleigh",
	"Miami", "Virginia Beach", "Oakland", "Minneapolis", "Tulsa", "Arlington",

	// Europe
	"London", "Paris", "Berlin", "Madrid", "Rome", "Barcelona", "Vienna",
	"Hamburg", "Munich", "Milan", "Prague", "Budapest", "Warsaw", "Brussels",
	"Amsterdam", "Stockholm", "Copenhagen", "Oslo", "Helsinki", "Dublin",
	"Athens", "Lisbon", "Edinburgh", "Manchester", "Lyon", "Marseille",
	"Turin", "Palermo", "Seville", "Zaragoza", "Valencia", "Krakow",
	"Glasgow", "Venice", "Florence", "Naples", "Geneva", "Zurich",

	// Asia
	"Tokyo", "Shanghai", "Beijing", "Seoul", "Hong Kong", "Singapore",
	"Bangkok", "Jakarta", "Manila", "Ho Chi Minh City", "Kuala Lumpur",
	"Taipei", "Hanoi", "Osaka", "Busan", "Phnom Penh", "Yangon", "Colombo",
	"Kathmandu", "Dhaka", "Karachi", "Lahore", "Islamabad", "Kabul",

	// Middle East and Africa
	"Dubai", "Abu Dhabi", "Riyadh", "Jeddah", "Tehran", "Baghdad", "Amman",
	"Beirut", "Damascus", "Jerusalem", "Tel Aviv", "Cairo", "Alexandria",
	"Casablanca", "Marrakech", "Tunis", "Algiers", "Cape Town", "Johannesburg",
	"Nairobi", "Lagos", "Addis Ababa", "Dar es Salaam", "Accra", "Khartoum",

	// Oceania
	"Sydney", "Melbourne", "Brisbane", "Perth", "Adelaide", "Gold Coast",
	"Canberra", "Auckland", "Wellington", "Christchurch",

	// Latin America
	"Mexico City", "São Paulo", "Buenos Aires", "Rio de Janeiro", "Lima",
	"Bogotá", "Santiago", "Caracas", "Quito", "Montevideo", "Havana",
	"Panama City", "San Juan", "Guadalajara", "Monterrey",
}

// DefaultAliases maps lowercase nicknames, old names and frequent
// misspellings to a canonical catalog name.
var DefaultAliases = map[string]string{
	"ny":        "New York",
	"nyc":       "New York",
	"sf":        "San Francisco",
	"la":        "Los Angeles",
	"dc":        "Washington",
	"chi":       "Chicago",
	"philly":    "Philadelphia",
	"vegas":     "Las Vegas",
	"bombay":    "Mumbai",
	"calcutta":  "Kolkata",
	"madras":    "Chennai",
	"banglore":  "Bangalore",
	"bengaluru": "Bangalore",
}
