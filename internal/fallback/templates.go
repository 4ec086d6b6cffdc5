package fallback

import "github.com/quizforge/quizforge/internal/item"

// builtinTemplates covers every supported category at every difficulty
// tier, two templates per cell so repeated fallbacks rotate. Operands
// are chosen so answers stay whole where the grade band expects whole
// numbers, and fallback_test.go proves every entry survives the same
// checks a generated item must pass.
var builtinTemplates = map[item.Category]map[item.Difficulty][]template{
	item.CategoryAddition: {
		item.DifficultyEasy: {{
			operands:    []string{"4", "3"},
			text:        "Sam has 4 marbles and finds 3 more. How many marbles does Sam have now?",
			explanation: "Count the marbles together: 4 plus 3 equals %s.",
			minGrade:    1, maxGrade: 12,
		}, {
			operands:    []string{"5", "2"},
			text:        "A hen lays 5 eggs one day and 2 eggs the next. How many eggs is that in all?",
			explanation: "Put the two days together: 5 plus 2 equals %s.",
			minGrade:    1, maxGrade: 12,
		}},
		item.DifficultyMedium: {{
			operands:    []string{"36", "47"},
			text:        "A library shelves 36 books in the morning and 47 in the afternoon. How many books were shelved that day?",
			explanation: "Add the two counts: 36 plus 47 equals %s.",
			minGrade:    2, maxGrade: 12,
		}, {
			operands:    []string{"58", "26"},
			text:        "A bus carries 58 riders and 26 more board at the depot. How many riders are on the bus?",
			explanation: "Add the new riders: 58 plus 26 equals %s.",
			minGrade:    2, maxGrade: 12,
		}},
		item.DifficultyHard: {{
			operands:    []string{"368", "457", "275"},
			text:        "A stadium sold 368 tickets on Friday, 457 on Saturday, and 275 on Sunday. How many tickets were sold over the weekend?",
			explanation: "Add all three days: 368 plus 457 plus 275 equals %s.",
			minGrade:    3, maxGrade: 12,
		}, {
			operands:    []string{"249", "386", "518"},
			text:        "A recycling drive collects 249 cans in week one, 386 in week two, and 518 in week three. How many cans were collected?",
			explanation: "Add the three weeks: 249 plus 386 plus 518 equals %s.",
			minGrade:    3, maxGrade: 12,
		}},
	},
	item.CategorySubtraction: {
		item.DifficultyEasy: {{
			operands:    []string{"9", "4"},
			text:        "There are 9 birds on a wire and 4 fly away. How many birds are left?",
			explanation: "Take 4 away from 9: 9 minus 4 equals %s.",
			minGrade:    1, maxGrade: 12,
		}, {
			operands:    []string{"8", "3"},
			text:        "A plate holds 8 strawberries and 3 get eaten. How many strawberries are left on the plate?",
			explanation: "Take 3 away from 8: 8 minus 3 equals %s.",
			minGrade:    1, maxGrade: 12,
		}},
		item.DifficultyMedium: {{
			operands:    []string{"82", "37"},
			text:        "A jar holds 82 buttons. 37 are used for a craft project. How many buttons remain?",
			explanation: "Subtract the buttons used: 82 minus 37 equals %s.",
			minGrade:    2, maxGrade: 12,
		}, {
			operands:    []string{"71", "28"},
			text:        "A parking lot has 71 spaces and 28 are taken. How many spaces are still open?",
			explanation: "Subtract the taken spaces: 71 minus 28 equals %s.",
			minGrade:    2, maxGrade: 12,
		}},
		item.DifficultyHard: {{
			operands:    []string{"1204", "658"},
			text:        "A warehouse starts the week with 1204 boxes and ships 658 of them. How many boxes are still in the warehouse?",
			explanation: "Subtract the shipped boxes: 1204 minus 658 equals %s.",
			minGrade:    4, maxGrade: 12,
		}, {
			operands:    []string{"1530", "764"},
			text:        "A charity sets a goal of 1530 meals and has already served 764. How many meals remain to reach the goal?",
			explanation: "Subtract the meals served: 1530 minus 764 equals %s.",
			minGrade:    4, maxGrade: 12,
		}},
	},
	item.CategoryMultiplication: {
		item.DifficultyEasy: {{
			operands:    []string{"3", "4"},
			text:        "A sticker sheet has 3 rows with 4 stickers in each row. How many stickers are on the sheet?",
			explanation: "Multiply rows by stickers per row: 3 times 4 equals %s.",
			minGrade:    2, maxGrade: 12,
		}, {
			operands:    []string{"2", "5"},
			text:        "A bookcase has 2 shelves with 5 trophies on each shelf. How many trophies does it hold?",
			explanation: "Multiply shelves by trophies per shelf: 2 times 5 equals %s.",
			minGrade:    2, maxGrade: 12,
		}},
		item.DifficultyMedium: {{
			operands:    []string{"14", "6"},
			text:        "Each crate holds 14 bottles and there are 6 crates. How many bottles are there altogether?",
			explanation: "Multiply bottles per crate by crates: 14 times 6 equals %s.",
			minGrade:    3, maxGrade: 12,
		}, {
			operands:    []string{"17", "4"},
			text:        "A ferry makes 4 trips carrying 17 cars each trip. How many cars does it carry in total?",
			explanation: "Multiply cars per trip by trips: 17 times 4 equals %s.",
			minGrade:    3, maxGrade: 12,
		}},
		item.DifficultyHard: {{
			operands:    []string{"127", "38"},
			text:        "A printing press produces 127 pages per minute. How many pages does it produce in 38 minutes?",
			explanation: "Multiply the rate by the time: 127 times 38 equals %s.",
			minGrade:    5, maxGrade: 12,
		}, {
			operands:    []string{"214", "46"},
			text:        "A farm plants 46 rows with 214 seedlings in each row. How many seedlings are planted?",
			explanation: "Multiply seedlings per row by rows: 214 times 46 equals %s.",
			minGrade:    5, maxGrade: 12,
		}},
	},
	item.CategoryDivision: {
		item.DifficultyEasy: {{
			operands:    []string{"12", "3"},
			text:        "12 cookies are shared equally among 3 friends. How many cookies does each friend get?",
			explanation: "Divide the cookies by the friends: 12 divided by 3 equals %s.",
			minGrade:    2, maxGrade: 12,
		}, {
			operands:    []string{"15", "5"},
			text:        "15 balloons are tied into 5 equal bunches. How many balloons are in each bunch?",
			explanation: "Divide the balloons by the bunches: 15 divided by 5 equals %s.",
			minGrade:    2, maxGrade: 12,
		}},
		item.DifficultyMedium: {{
			operands:    []string{"96", "8"},
			text:        "A teacher splits 96 pencils into packs of 8. How many packs are there?",
			explanation: "Divide the pencils by the pack size: 96 divided by 8 equals %s.",
			minGrade:    3, maxGrade: 12,
		}, {
			operands:    []string{"84", "7"},
			text:        "A florist arranges 84 roses into vases of 7. How many vases does the florist fill?",
			explanation: "Divide the roses by the vase size: 84 divided by 7 equals %s.",
			minGrade:    3, maxGrade: 12,
		}},
		item.DifficultyHard: {{
			operands:    []string{"1512", "24"},
			text:        "A bakery bakes 1512 rolls and boxes them 24 to a box. How many boxes does the bakery fill?",
			explanation: "Divide the rolls by the box size: 1512 divided by 24 equals %s.",
			minGrade:    5, maxGrade: 12,
		}, {
			operands:    []string{"2208", "32"},
			text:        "A cannery seals 2208 jars and crates them 32 to a crate. How many crates does it fill?",
			explanation: "Divide the jars by the crate size: 2208 divided by 32 equals %s.",
			minGrade:    5, maxGrade: 12,
		}},
	},
	item.CategoryFractionAddition: {
		item.DifficultyEasy: {{
			operands:    []string{"1/4", "2/4"},
			text:        "Ava eats 1/4 of a pizza and Ben eats 2/4 of the same pizza. What fraction of the pizza did they eat together?",
			explanation: "The denominators already match, so add the numerators: 1/4 plus 2/4 equals %s.",
			minGrade:    4, maxGrade: 12,
		}, {
			operands:    []string{"1/5", "3/5"},
			text:        "A mural is painted 1/5 on Monday and 3/5 on Tuesday. What fraction of the mural is painted?",
			explanation: "The denominators already match, so add the numerators: 1/5 plus 3/5 equals %s.",
			minGrade:    4, maxGrade: 12,
		}},
		item.DifficultyMedium: {{
			operands:    []string{"1/3", "1/4"},
			text:        "A recipe uses 1/3 cup of milk and another 1/4 cup later. How much milk does the recipe use in total?",
			explanation: "Rewrite both over 12: 1/3 plus 1/4 equals %s.",
			minGrade:    4, maxGrade: 12,
		}, {
			operands:    []string{"1/2", "1/6"},
			text:        "A hiker covers 1/2 of the route before lunch and 1/6 after. What fraction of the route is done?",
			explanation: "Rewrite both over 6: 1/2 plus 1/6 equals %s.",
			minGrade:    4, maxGrade: 12,
		}},
		item.DifficultyHard: {{
			operands:    []string{"1/6", "5/12"},
			text:        "A trail is walked in two stretches of 1/6 mile and 5/12 mile. How long is the trail?",
			explanation: "Use a common denominator of 12: 1/6 plus 5/12 equals %s.",
			minGrade:    5, maxGrade: 12,
		}, {
			operands:    []string{"3/8", "1/4"},
			text:        "A tank is filled 3/8 in the morning and another 1/4 in the evening. How full is the tank?",
			explanation: "Use a common denominator of 8: 3/8 plus 1/4 equals %s.",
			minGrade:    5, maxGrade: 12,
		}},
	},
	item.CategoryFractionSubtraction: {
		item.DifficultyEasy: {{
			operands:    []string{"3/4", "1/4"},
			text:        "A bottle is 3/4 full. After pouring out 1/4 of the bottle, how full is it?",
			explanation: "The denominators match, so subtract the numerators: 3/4 minus 1/4 equals %s.",
			minGrade:    4, maxGrade: 12,
		}, {
			operands:    []string{"5/6", "2/6"},
			text:        "A candle is 5/6 of its original height and burns down by 2/6. What fraction of the height remains?",
			explanation: "The denominators match, so subtract the numerators: 5/6 minus 2/6 equals %s.",
			minGrade:    4, maxGrade: 12,
		}},
		item.DifficultyMedium: {{
			operands:    []string{"5/6", "1/3"},
			text:        "A ribbon is 5/6 meter long. 1/3 meter is cut off. How much ribbon is left?",
			explanation: "Rewrite both over 6: 5/6 minus 1/3 equals %s.",
			minGrade:    4, maxGrade: 12,
		}, {
			operands:    []string{"7/8", "1/4"},
			text:        "A sandbox is 7/8 full of sand and 1/4 of the sandbox is scooped out. How full is it now?",
			explanation: "Rewrite 1/4 as 2/8: 7/8 minus 2/8 equals %s.",
			minGrade:    4, maxGrade: 12,
		}},
		item.DifficultyHard: {{
			operands:    []string{"11/12", "1/3"},
			text:        "A tank holds 11/12 of its capacity. After 1/3 of the capacity is drained, what fraction remains?",
			explanation: "Use a common denominator of 12: 11/12 minus 1/3 equals %s.",
			minGrade:    5, maxGrade: 12,
		}, {
			operands:    []string{"9/10", "2/5"},
			text:        "A battery sits at 9/10 charge and a long call drains 2/5 of the charge. What fraction is left?",
			explanation: "Rewrite 2/5 as 4/10: 9/10 minus 4/10 equals %s.",
			minGrade:    5, maxGrade: 12,
		}},
	},
	item.CategoryComparison: {
		item.DifficultyEasy: {{
			operands:    []string{"8", "12"},
			text:        "Which number is larger, 8 or 12?",
			explanation: "Compare place values: 12 has more ones than 8, so the answer is %s.",
			minGrade:    1, maxGrade: 12,
		}, {
			operands:    []string{"14", "9"},
			text:        "Which number is larger, 14 or 9?",
			explanation: "14 is a ten and more, while 9 is less than a ten, so the answer is %s.",
			minGrade:    1, maxGrade: 12,
		}},
		item.DifficultyMedium: {{
			operands:    []string{"347", "374"},
			text:        "Which number is larger, 347 or 374?",
			explanation: "Both have 3 hundreds, but 374 has 7 tens against 4 tens, so the answer is %s.",
			minGrade:    2, maxGrade: 12,
		}, {
			operands:    []string{"562", "529"},
			text:        "Which number is larger, 562 or 529?",
			explanation: "Both have 5 hundreds, but 562 has 6 tens against 2 tens, so the answer is %s.",
			minGrade:    2, maxGrade: 12,
		}},
		item.DifficultyHard: {{
			operands:    []string{"5/8", "3/4"},
			text:        "Which fraction is larger, 5/8 or 3/4?",
			explanation: "Over a common denominator of 8, 3/4 becomes 6/8, which beats 5/8, so the answer is %s.",
			minGrade:    5, maxGrade: 12,
		}, {
			operands:    []string{"2/3", "7/12"},
			text:        "Which fraction is larger, 2/3 or 7/12?",
			explanation: "Over twelfths, 2/3 becomes 8/12, which beats 7/12, so the answer is %s.",
			minGrade:    5, maxGrade: 12,
		}},
	},
}
