package catalog

import "github.com/iwvelando/dealer-finance/internal/domain"

func stock(category domain.Category, maker, model string, year int, price float64, color string, mileage int, transmission, description, image string) domain.Car {
	return domain.Car{
		Make:         maker,
		Model:        model,
		Year:         year,
		Price:        price,
		Color:        color,
		Mileage:      mileage,
		FuelType:     "Petrol",
		Transmission: transmission,
		Category:     category,
		Description:  description,
		ImageURLs:    []string{image},
	}
}

// DefaultInventory returns the showroom stock installed on first start.
func DefaultInventory() []domain.Car {
	const auto, manual = "Automatic", "Manual"
	return []domain.Car{
		stock(domain.CategoryLuxury, "Mercedes", "GLE", 2020, 280000, "White", 45000, auto, "Luxury car in excellent condition", "/images/cars/mercedes-gle.jpeg"),
		stock(domain.CategoryLuxury, "BMW", "5 Series", 2019, 265000, "Black", 52000, auto, "Elegant sports sedan", "/images/cars/bmw-5series.jpeg"),
		stock(domain.CategoryLuxury, "Audi", "Q7", 2021, 295000, "Grey", 38000, auto, "Comfortable luxury SUV", "/images/cars/audi-q7.webp"),
		stock(domain.CategoryLuxury, "Lexus", "RX 350", 2020, 275000, "White", 42000, auto, "Reliable luxury car", "/images/cars/lexus-rx-350.jpg"),
		stock(domain.CategoryLuxury, "Ford", "Expedition", 2019, 30000, "Blue", 300000, auto, "Large family SUV", "/images/cars/ford-expedition.jpg"),

		stock(domain.CategoryClassic, "Dodge", "Dart Swinger", 1970, 220000, "Purple", 150000, manual, "Rare classic", "/images/cars/dodge-dart-swinger.jpg"),
		stock(domain.CategoryClassic, "Classic", "Vintage", 1985, 235000, "Red", 89000, manual, "Preserved classic", "/images/cars/classic-1.jpg"),
		stock(domain.CategoryClassic, "Ford", "Classic", 1990, 245000, "Blue", 120000, manual, "Elegant classic", "/images/cars/classic-2.png"),
		stock(domain.CategoryClassic, "Chevrolet", "Classic", 1988, 230000, "Yellow", 95000, manual, "Distinctive classic", "/images/cars/classic-3.jpg"),
		stock(domain.CategoryClassic, "Pontiac", "Classic", 1987, 240000, "Green", 110000, manual, "One of a kind classic", "/images/cars/classic-4.png"),

		stock(domain.CategorySport, "Chevrolet", "Camaro", 2020, 290000, "Blue", 35000, auto, "Powerful sports car", "/images/cars/chevrolet-camaro.webp"),
		stock(domain.CategorySport, "Ford", "Mustang", 2019, 275000, "Red", 42000, auto, "American sports car", "/images/cars/ford-mustang.jpg"),
		stock(domain.CategorySport, "Dodge", "Charger", 2021, 285000, "Black", 28000, auto, "Powerful sports car", "/images/cars/dodge-charger.jpg"),
		stock(domain.CategorySport, "Chevrolet", "Corvette", 2020, 295000, "Yellow", 32000, auto, "Supercar", "/images/cars/chevrolet-corvette.jpg"),
		stock(domain.CategorySport, "Pontiac", "Firebird", 2019, 265000, "White", 45000, auto, "Classic-styled sports car", "/images/cars/pontiac-firebird.jpg"),

		stock(domain.CategoryFamily, "Ford", "Explorer", 2020, 250000, "Grey", 38000, auto, "Comfortable family car", "/images/cars/ford-explorer.jpg"),
		stock(domain.CategoryFamily, "Chevrolet", "Tahoe", 2019, 260000, "Blue", 42000, auto, "Large family SUV", "/images/cars/chevrolet-tahoe.jpg"),
		stock(domain.CategoryFamily, "GMC", "Yukon", 2021, 270000, "White", 25000, auto, "Luxury family car", "/images/cars/gmc-yukon.jpg"),
		stock(domain.CategoryFamily, "Jeep", "Grand Cherokee", 2019, 245000, "Red", 48000, auto, "Rugged family car", "/images/cars/jeep-grand-cherokee.jpg"),
	}
}
