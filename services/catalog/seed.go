package catalog

// SeedProducts is loaded into an empty catalog at startup.
var SeedProducts = []Product{
	{ID: 1, Name: "Angular Speedster Board 2000", Description: "Lightweight board for fast riders", Price: 20000, PictureURL: "/images/products/sb-ang1.png", Type: "Boards", Brand: "Angular", QuantityInStock: 100},
	{ID: 2, Name: "Green Angular Board 3000", Description: "All-round board for beginners", Price: 15000, PictureURL: "/images/products/sb-ang2.png", Type: "Boards", Brand: "Angular", QuantityInStock: 100},
	{ID: 3, Name: "Core Board Speed Rush 3", Description: "Stiff board for racing", Price: 18000, PictureURL: "/images/products/sb-core1.png", Type: "Boards", Brand: "NetCore", QuantityInStock: 100},
	{ID: 4, Name: "Net Core Super Board", Description: "Board with extra grip", Price: 30000, PictureURL: "/images/products/sb-core2.png", Type: "Boards", Brand: "NetCore", QuantityInStock: 100},
	{ID: 5, Name: "React Board Super Whizzy Fast", Description: "Board for tricks and jumps", Price: 25000, PictureURL: "/images/products/sb-react1.png", Type: "Boards", Brand: "React", QuantityInStock: 100},
	{ID: 6, Name: "Typescript Entry Board", Description: "Board for the whole family", Price: 12000, PictureURL: "/images/products/sb-ts1.png", Type: "Boards", Brand: "TypeScript", QuantityInStock: 100},
	{ID: 7, Name: "Core Blue Hat", Description: "Warm woollen hat", Price: 1000, PictureURL: "/images/products/hat-core1.png", Type: "Hats", Brand: "NetCore", QuantityInStock: 100},
	{ID: 8, Name: "Green React Woolen Hat", Description: "Hat with a pompom", Price: 800, PictureURL: "/images/products/hat-react1.png", Type: "Hats", Brand: "React", QuantityInStock: 100},
	{ID: 9, Name: "Purple React Woolen Hat", Description: "Hat with a pompom", Price: 1500, PictureURL: "/images/products/hat-react2.png", Type: "Hats", Brand: "React", QuantityInStock: 100},
	{ID: 10, Name: "Blue Code Gloves", Description: "Waterproof gloves", Price: 1800, PictureURL: "/images/products/glove-code1.png", Type: "Gloves", Brand: "VS Code", QuantityInStock: 100},
	{ID: 11, Name: "Green Code Gloves", Description: "Waterproof gloves", Price: 1500, PictureURL: "/images/products/glove-code2.png", Type: "Gloves", Brand: "VS Code", QuantityInStock: 100},
	{ID: 12, Name: "Purple React Gloves", Description: "Gloves with touchscreen tips", Price: 1600, PictureURL: "/images/products/glove-react1.png", Type: "Gloves", Brand: "React", QuantityInStock: 100},
	{ID: 13, Name: "Redis Red Boots", Description: "Boots for cold days", Price: 25000, PictureURL: "/images/products/boot-redis1.png", Type: "Boots", Brand: "Redis", QuantityInStock: 100},
	{ID: 14, Name: "Core Red Boots", Description: "Boots with thick soles", Price: 18999, PictureURL: "/images/products/boot-core2.png", Type: "Boots", Brand: "NetCore", QuantityInStock: 100},
}
